package endpoints

import (
	"net/http"

	"github.com/cheatsheethub/cheatsheethub/pkg/server"
)

// RegisterCategoriesEndpoints registers the public category list used by
// the editor forms.
func RegisterCategoriesEndpoints(s *server.Server) {
	s.Router.HandleFunc("/api/categories", handleListCategories(s)).Methods("GET")
}

func handleListCategories(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := s.ContentStore.ListCategories(r.Context())
		if err != nil {
			respondWithStoreError(s, w, r, err, "Failed to fetch categories")
			return
		}
		respondWithJSON(w, http.StatusOK, categories)
	}
}
