package endpoints

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/cheatsheethub/cheatsheethub/pkg/server"
)

// StatusResponse is the body of the health probes.
type StatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RegisterStatusEndpoints registers the liveness and readiness probes
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/healthz", handleHealthz()).Methods("GET")
	s.Router.HandleFunc("/readyz", handleReadyz(s)).Methods("GET")
}

func handleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	}
}

func handleReadyz(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.HealthStore.CheckConnectivity(r.Context()); err != nil {
			requestLogger(s, r).Warn("cms connectivity check failed", zap.Error(err))
			respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
				Status: "error",
				Error:  "cms connectivity check failed",
			})
			return
		}
		respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	}
}
