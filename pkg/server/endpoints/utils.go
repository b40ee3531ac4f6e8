package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/cheatsheethub/cheatsheethub/pkg/audit"
	"github.com/cheatsheethub/cheatsheethub/pkg/logging"
	"github.com/cheatsheethub/cheatsheethub/pkg/server"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store"
	"github.com/cheatsheethub/cheatsheethub/pkg/session"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondUnauthorized(w http.ResponseWriter) {
	respondWithError(w, http.StatusUnauthorized, "Unauthorized")
}

// respondWithStoreError maps a store error to a response. Anything outside
// the client-error taxonomy is logged and answered with the generic message.
func respondWithStoreError(s *server.Server, w http.ResponseWriter, r *http.Request, err error, message string) {
	log := requestLogger(s, r)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Info("cheatsheet not found", zap.Error(err))
		respondWithError(w, http.StatusNotFound, "Cheatsheet not found")
	case errors.Is(err, store.ErrInvalidInput):
		log.Warn("rejected cheatsheet data", zap.Error(err))
		respondWithError(w, http.StatusBadRequest, "Invalid cheatsheet data")
	case errors.Is(err, store.ErrForbidden):
		log.Warn("cms rejected access token", zap.Error(err))
		respondWithError(w, http.StatusForbidden, "Forbidden")
	default:
		log.Error(message, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, message)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func requestLogger(s *server.Server, r *http.Request) *zap.Logger {
	return logging.FromContext(r.Context(), s.Logger)
}

// clientIP returns the caller address without its port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func auditCheatsheet(s *server.Server, r *http.Request, operation, id, slug string, err error) {
	var userID string
	if sess, ok := session.FromContext(r.Context()); ok {
		userID = sess.UserID
	}
	s.Audit.Log(audit.CheatsheetEvent{
		UserID:       userID,
		ClientIP:     clientIP(r),
		Operation:    operation,
		CheatsheetID: id,
		Slug:         slug,
		Success:      err == nil,
		ErrorMessage: errorMessage(err),
	})
}
