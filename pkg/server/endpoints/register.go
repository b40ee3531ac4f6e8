package endpoints

import (
	"github.com/cheatsheethub/cheatsheethub/pkg/server"
)

// RegisterAll registers all endpoints on the server. Order matters where
// routes overlap: /api/cheatsheets/my precedes /api/cheatsheets/{id}.
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterCheatsheetsEndpoints(srv)
	RegisterTagsEndpoints(srv)
	RegisterCategoriesEndpoints(srv)
	RegisterPreviewEndpoint(srv)
	RegisterAuthEndpoints(srv)
	RegisterPageEndpoints(srv)
	RegisterEditorPages(srv)

	// Static files
	RegisterStaticFiles(srv)
}
