package endpoints

import (
	"embed"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"github.com/cheatsheethub/cheatsheethub/pkg/markdown"
	"github.com/cheatsheethub/cheatsheethub/pkg/server"
)

//go:embed static
var staticFiles embed.FS

// RegisterStaticFiles registers static file serving for the site CSS, the
// editor script, and the highlight stylesheet for the renderer's style.
// Static files are embedded in the binary.
func RegisterStaticFiles(srv *server.Server) {
	highlight, err := markdown.Stylesheet(srv.Renderer.Style())
	if err != nil {
		srv.Logger.Error("failed to build highlight stylesheet", zap.String("style", srv.Renderer.Style()), zap.Error(err))
	}
	srv.Router.HandleFunc("/static/highlight.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(highlight)
	}).Methods("GET")

	staticFS, _ := fs.Sub(staticFiles, "static")
	srv.Router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))),
	)

	// Serve favicon.ico (return 404 if not present)
	srv.Router.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
}
