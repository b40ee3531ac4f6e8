package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cheatsheethub/cheatsheethub/pkg/audit"
	"github.com/cheatsheethub/cheatsheethub/pkg/model"
	"github.com/cheatsheethub/cheatsheethub/pkg/server"
)

// RegisterCheatsheetsEndpoints registers the editor API. Every route
// requires a session.
func RegisterCheatsheetsEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/api/cheatsheets").Subrouter()
	r.Use(s.SessionMiddleware.Middleware)

	r.HandleFunc("", handleCreateCheatsheet(s)).Methods("POST")
	r.HandleFunc("/my", handleMyCheatsheets(s)).Methods("GET")
	r.HandleFunc("/{id}", handleGetCheatsheet(s)).Methods("GET")
	r.HandleFunc("/{id}", handleUpdateCheatsheet(s)).Methods("PATCH")
	r.HandleFunc("/{id}", handleDeleteCheatsheet(s)).Methods("DELETE")
}

func handleCreateCheatsheet(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := s.AccessToken(r)
		if !ok {
			respondUnauthorized(w)
			return
		}

		var in model.CheatsheetInput
		if err := decodeJSON(w, r, &in); err != nil {
			requestLogger(s, r).Info("invalid request body", zap.Error(err))
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		created, err := s.EditorStore.CreateCheatsheet(r.Context(), token, in)
		if err != nil {
			slug, _ := in.Slug.Get()
			auditCheatsheet(s, r, audit.OperationCreate, "", slug, err)
			respondWithStoreError(s, w, r, err, "Failed to create cheatsheet")
			return
		}
		auditCheatsheet(s, r, audit.OperationCreate, created.ID, created.Slug, nil)
		respondWithJSON(w, http.StatusCreated, created)
	}
}

func handleMyCheatsheets(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := s.AccessToken(r)
		if !ok {
			respondUnauthorized(w)
			return
		}

		sheets, err := s.EditorStore.ListMyCheatsheets(r.Context(), token)
		if err != nil {
			respondWithStoreError(s, w, r, err, "Failed to fetch cheatsheets")
			return
		}
		respondWithJSON(w, http.StatusOK, sheets)
	}
}

func handleGetCheatsheet(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := s.AccessToken(r)
		if !ok {
			respondUnauthorized(w)
			return
		}

		sheet, err := s.EditorStore.GetCheatsheet(r.Context(), token, mux.Vars(r)["id"])
		if err != nil {
			respondWithStoreError(s, w, r, err, "Failed to fetch cheatsheet")
			return
		}
		respondWithJSON(w, http.StatusOK, sheet)
	}
}

func handleUpdateCheatsheet(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := s.AccessToken(r)
		if !ok {
			respondUnauthorized(w)
			return
		}

		var in model.CheatsheetInput
		if err := decodeJSON(w, r, &in); err != nil {
			requestLogger(s, r).Info("invalid request body", zap.Error(err))
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		id := mux.Vars(r)["id"]
		updated, err := s.EditorStore.UpdateCheatsheet(r.Context(), token, id, in)
		if err != nil {
			auditCheatsheet(s, r, audit.OperationUpdate, id, "", err)
			respondWithStoreError(s, w, r, err, "Failed to update cheatsheet")
			return
		}
		auditCheatsheet(s, r, audit.OperationUpdate, id, updated.Slug, nil)
		respondWithJSON(w, http.StatusOK, updated)
	}
}

func handleDeleteCheatsheet(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := s.AccessToken(r)
		if !ok {
			respondUnauthorized(w)
			return
		}

		id := mux.Vars(r)["id"]
		err := s.EditorStore.DeleteCheatsheet(r.Context(), token, id)
		auditCheatsheet(s, r, audit.OperationDelete, id, "", err)
		if err != nil {
			respondWithStoreError(s, w, r, err, "Failed to delete cheatsheet")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
