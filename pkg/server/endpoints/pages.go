package endpoints

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cheatsheethub/cheatsheethub/pkg/model"
	"github.com/cheatsheethub/cheatsheethub/pkg/server"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store"
)

// RegisterPageEndpoints registers the public pages. A session, when
// present, only changes the header.
func RegisterPageEndpoints(s *server.Server) {
	page := func(h http.HandlerFunc) http.Handler {
		return s.SessionMiddleware.Optional(h)
	}

	s.Router.Handle("/", page(handleHomePage(s))).Methods("GET")
	s.Router.Handle("/categories/{slug}", page(handleCategoryPage(s))).Methods("GET")
	s.Router.Handle("/tags/{slug}", page(handleTagPage(s))).Methods("GET")
	s.Router.Handle("/search", page(handleSearchPage(s))).Methods("GET")
	s.Router.Handle("/cheatsheets/{slug}", page(handleCheatsheetPage(s))).Methods("GET")

	s.Router.NotFoundHandler = handleNotFound(s)
}

// sidebarFetches adds the category and tag list fetches to g. A failed
// fetch is logged and leaves its list empty.
func sidebarFetches(ctx context.Context, s *server.Server, log *zap.Logger, g *errgroup.Group, p *listPage) {
	g.Go(func() error {
		categories, err := s.ContentStore.ListCategories(ctx)
		if err != nil {
			log.Error("failed to fetch categories", zap.Error(err))
			categories = []model.Category{}
		}
		p.Categories = categories
		return nil
	})
	g.Go(func() error {
		tags, err := s.ContentStore.ListTags(ctx)
		if err != nil {
			log.Error("failed to fetch tags", zap.Error(err))
			tags = []model.Tag{}
		}
		p.Tags = tags
		return nil
	})
}

func cheatsheetsFetch(ctx context.Context, s *server.Server, log *zap.Logger, g *errgroup.Group, p *listPage, opts store.ListOptions) {
	g.Go(func() error {
		sheets, err := s.ContentStore.ListCheatsheets(ctx, opts)
		if err != nil {
			log.Error("failed to fetch cheatsheets", zap.Error(err))
			sheets = []model.Cheatsheet{}
		}
		p.Cheatsheets = sheets
		return nil
	})
}

func handleHomePage(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := requestLogger(s, r)
		cfg := s.Config.Get()

		p := listPage{pageMeta: newPageMeta(s, r, "")}
		var g errgroup.Group
		cheatsheetsFetch(ctx, s, log, &g, &p, store.ListOptions{Limit: cfg.HomeLimit})
		sidebarFetches(ctx, s, log, &g, &p)
		_ = g.Wait()

		renderPage(s, w, r, http.StatusOK, "home", p)
	}
}

func handleCategoryPage(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := requestLogger(s, r)
		slug := mux.Vars(r)["slug"]

		p := listPage{pageMeta: newPageMeta(s, r, ""), ActiveCategory: slug}
		var lookupErr error
		var g errgroup.Group
		g.Go(func() error {
			p.Category, lookupErr = s.ContentStore.GetCategoryBySlug(ctx, slug)
			return nil
		})
		cheatsheetsFetch(ctx, s, log, &g, &p, store.ListOptions{Category: slug, Limit: s.Config.Get().ListLimit})
		sidebarFetches(ctx, s, log, &g, &p)
		_ = g.Wait()

		if !lookupSucceeded(s, w, r, lookupErr) {
			return
		}

		p.Title = p.Category.Name
		p.Description = p.Category.Description
		if p.Description == "" {
			p.Description = "Cheatsheets for " + p.Category.Name
		}
		renderPage(s, w, r, http.StatusOK, "category", p)
	}
}

func handleTagPage(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := requestLogger(s, r)
		slug := mux.Vars(r)["slug"]

		p := listPage{pageMeta: newPageMeta(s, r, ""), ActiveTag: slug}
		var lookupErr error
		var g errgroup.Group
		g.Go(func() error {
			p.Tag, lookupErr = s.ContentStore.GetTagBySlug(ctx, slug)
			return nil
		})
		cheatsheetsFetch(ctx, s, log, &g, &p, store.ListOptions{Tag: slug, Limit: s.Config.Get().ListLimit})
		sidebarFetches(ctx, s, log, &g, &p)
		_ = g.Wait()

		if !lookupSucceeded(s, w, r, lookupErr) {
			return
		}

		p.Title = "#" + p.Tag.Name
		p.Description = "Cheatsheets tagged with " + p.Tag.Name
		renderPage(s, w, r, http.StatusOK, "tag", p)
	}
}

func handleSearchPage(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := requestLogger(s, r)
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		p := listPage{pageMeta: newPageMeta(s, r, "Search"), Cheatsheets: []model.Cheatsheet{}}
		p.Query = query
		if query != "" {
			p.Title = "Search: " + query
		}

		var g errgroup.Group
		if query != "" {
			cheatsheetsFetch(ctx, s, log, &g, &p, store.ListOptions{Search: query, Limit: s.Config.Get().ListLimit})
		}
		sidebarFetches(ctx, s, log, &g, &p)
		_ = g.Wait()

		renderPage(s, w, r, http.StatusOK, "search", p)
	}
}

func handleCheatsheetPage(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sheet, err := s.ContentStore.GetCheatsheetBySlug(r.Context(), mux.Vars(r)["slug"])
		if !lookupSucceeded(s, w, r, err) {
			return
		}

		p := cheatsheetPage{pageMeta: newPageMeta(s, r, sheet.Title), Cheatsheet: sheet}
		p.Description = sheet.Description()
		if sheet.Body != "" {
			body, err := s.Renderer.HTML(sheet.Body)
			if err != nil {
				requestLogger(s, r).Error("failed to render cheatsheet body", zap.String("slug", sheet.Slug), zap.Error(err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			p.Body = body
		}
		renderPage(s, w, r, http.StatusOK, "cheatsheet", p)
	}
}

// lookupSucceeded renders the 404 or 503 page for a failed slug lookup.
func lookupSucceeded(s *server.Server, w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, store.ErrNotFound):
		renderNotFound(s, w, r)
	default:
		requestLogger(s, r).Error("slug lookup failed", zap.Error(err))
		renderUnavailable(s, w, r)
	}
	return false
}
