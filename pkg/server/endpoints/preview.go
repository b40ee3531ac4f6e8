package endpoints

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/cheatsheethub/cheatsheethub/pkg/server"
)

// PreviewRequest is the body of POST /api/preview.
type PreviewRequest struct {
	Markdown string `json:"markdown"`
}

// PreviewResponse carries the rendered HTML.
type PreviewResponse struct {
	HTML string `json:"html"`
}

// RegisterPreviewEndpoint registers the editor's Markdown preview.
func RegisterPreviewEndpoint(s *server.Server) {
	s.Router.Handle("/api/preview", s.SessionMiddleware.Middleware(handlePreview(s))).Methods("POST")
}

func handlePreview(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PreviewRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		html, err := s.Renderer.HTML(req.Markdown)
		if err != nil {
			requestLogger(s, r).Error("failed to render preview", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to render preview")
			return
		}
		respondWithJSON(w, http.StatusOK, PreviewResponse{HTML: string(html)})
	}
}
