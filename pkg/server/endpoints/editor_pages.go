package endpoints

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cheatsheethub/cheatsheethub/pkg/model"
	"github.com/cheatsheethub/cheatsheethub/pkg/server"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store"
)

var difficulties = []model.Difficulty{
	model.DifficultyBeginner,
	model.DifficultyIntermediate,
	model.DifficultyAdvanced,
}

// RegisterEditorPages registers the editor pages. Visitors without a session
// are sent to the home page.
func RegisterEditorPages(s *server.Server) {
	r := s.Router.PathPrefix("/editor").Subrouter()
	r.Use(s.SessionMiddleware.Redirect("/"))

	r.HandleFunc("", handleEditorList(s)).Methods("GET")
	r.HandleFunc("/new", handleEditorNew(s)).Methods("GET")
	r.HandleFunc("/{id}", handleEditorEdit(s)).Methods("GET")
}

func handleEditorList(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := s.AccessToken(r)
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		sheets, err := s.EditorStore.ListMyCheatsheets(r.Context(), token)
		if err != nil {
			requestLogger(s, r).Error("failed to fetch cheatsheets", zap.Error(err))
			renderUnavailable(s, w, r)
			return
		}

		meta := newPageMeta(s, r, "My Cheatsheets")
		renderPage(s, w, r, http.StatusOK, "editor_list", editorListPage{pageMeta: meta, Cheatsheets: sheets})
	}
}

// formOptions fetches the category and tag choices for the form.
func formOptions(ctx context.Context, s *server.Server, log *zap.Logger, g *errgroup.Group, p *editorFormPage) {
	g.Go(func() error {
		categories, err := s.ContentStore.ListCategories(ctx)
		if err != nil {
			log.Error("failed to fetch categories", zap.Error(err))
		}
		p.Categories = categories
		return nil
	})
	g.Go(func() error {
		tags, err := s.ContentStore.ListTags(ctx)
		if err != nil {
			log.Error("failed to fetch tags", zap.Error(err))
		}
		p.Tags = tags
		return nil
	})
}

func newEditorFormPage(s *server.Server, r *http.Request, title string) editorFormPage {
	meta := newPageMeta(s, r, title)
	meta.Editor = true
	return editorFormPage{
		pageMeta:     meta,
		TagIDs:       map[string]bool{},
		Difficulties: difficulties,
	}
}

func handleEditorNew(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := newEditorFormPage(s, r, "Create New Cheatsheet")
		p.New = true

		var g errgroup.Group
		formOptions(r.Context(), s, requestLogger(s, r), &g, &p)
		_ = g.Wait()

		renderPage(s, w, r, http.StatusOK, "editor_form", p)
	}
}

func handleEditorEdit(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := s.AccessToken(r)
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		ctx := r.Context()
		log := requestLogger(s, r)
		id := mux.Vars(r)["id"]

		p := newEditorFormPage(s, r, "Edit Cheatsheet")
		var sheet *model.Cheatsheet
		var sheetErr error
		var g errgroup.Group
		g.Go(func() error {
			sheet, sheetErr = s.EditorStore.GetCheatsheet(ctx, token, id)
			return nil
		})
		formOptions(ctx, s, log, &g, &p)
		_ = g.Wait()

		switch {
		case errors.Is(sheetErr, store.ErrNotFound), errors.Is(sheetErr, store.ErrForbidden):
			log.Info("cheatsheet not editable", zap.String("id", id), zap.Error(sheetErr))
			http.Redirect(w, r, "/editor", http.StatusSeeOther)
			return
		case sheetErr != nil:
			log.Error("failed to fetch cheatsheet", zap.String("id", id), zap.Error(sheetErr))
			renderUnavailable(s, w, r)
			return
		}

		p.Cheatsheet = *sheet
		p.CategoryID = sheet.Category.ID()
		if sheet.Difficulty != nil {
			p.Difficulty = sheet.Difficulty.String()
		}
		for _, tag := range sheet.TagItems() {
			p.TagIDs[tag.ID] = true
		}
		renderPage(s, w, r, http.StatusOK, "editor_form", p)
	}
}
