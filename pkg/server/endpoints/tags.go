package endpoints

import (
	"net/http"

	"github.com/cheatsheethub/cheatsheethub/pkg/server"
)

// RegisterTagsEndpoints registers the public tag list.
func RegisterTagsEndpoints(s *server.Server) {
	s.Router.HandleFunc("/api/tags", handleListTags(s)).Methods("GET")
}

func handleListTags(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := s.ContentStore.ListTags(r.Context())
		if err != nil {
			respondWithStoreError(s, w, r, err, "Failed to fetch tags")
			return
		}
		respondWithJSON(w, http.StatusOK, tags)
	}
}
