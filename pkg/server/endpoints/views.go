package endpoints

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cheatsheethub/cheatsheethub/pkg/model"
	"github.com/cheatsheethub/cheatsheethub/pkg/server"
	"github.com/cheatsheethub/cheatsheethub/pkg/session"
)

//go:embed templates/*.html
var templateFiles embed.FS

// maxCardTags is the number of tag chips shown on a cheatsheet card.
const maxCardTags = 5

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006/1/2")
	},
	"iso": func(t time.Time) string {
		return t.Format(time.RFC3339)
	},
	"plural": func(n int) string {
		if n == 1 {
			return ""
		}
		return "s"
	},
	"category": func(c model.Cheatsheet) *model.Category {
		if cat, ok := c.CategoryItem(); ok {
			return &cat
		}
		return nil
	},
	"tags": func(c model.Cheatsheet) []model.Tag {
		return c.TagItems()
	},
	"related": func(c model.Cheatsheet) []model.Cheatsheet {
		return c.RelatedItems()
	},
	"firstTags": func(tags []model.Tag) []model.Tag {
		if len(tags) > maxCardTags {
			return tags[:maxCardTags]
		}
		return tags
	},
	"moreTags": func(tags []model.Tag) int {
		if len(tags) > maxCardTags {
			return len(tags) - maxCardTags
		}
		return 0
	},
}

var pageTemplates = parsePages(
	"home", "category", "tag", "search", "cheatsheet", "error",
	"editor_list", "editor_form",
)

// parsePages builds one template set per page, each combining the layout,
// the shared components, and the page's own content block.
func parsePages(names ...string) map[string]*template.Template {
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		pages[name] = template.Must(
			template.New(name).Funcs(templateFuncs).ParseFS(templateFiles,
				"templates/layout.html",
				"templates/components.html",
				"templates/"+name+".html",
			),
		)
	}
	return pages
}

// pageMeta is the data every page layout needs.
type pageMeta struct {
	Title       string
	Description string
	SiteName    string
	Session     *session.Session
	Year        int
	Query       string
	Editor      bool
}

func newPageMeta(s *server.Server, r *http.Request, title string) pageMeta {
	sess, _ := session.FromContext(r.Context())
	return pageMeta{
		Title:    title,
		SiteName: s.Config.Get().SiteName,
		Session:  sess,
		Year:     time.Now().Year(),
	}
}

// listPage backs the home, category, tag, and search pages.
type listPage struct {
	pageMeta
	Cheatsheets    []model.Cheatsheet
	Categories     []model.Category
	Tags           []model.Tag
	ActiveCategory string
	ActiveTag      string
	Category       *model.Category
	Tag            *model.Tag
}

type cheatsheetPage struct {
	pageMeta
	Cheatsheet *model.Cheatsheet
	Body       template.HTML
}

type errorPage struct {
	pageMeta
	Heading string
	Message string
}

type editorListPage struct {
	pageMeta
	Cheatsheets []model.Cheatsheet
}

type editorFormPage struct {
	pageMeta
	New          bool
	Cheatsheet   model.Cheatsheet
	CategoryID   string
	Difficulty   string
	TagIDs       map[string]bool
	Categories   []model.Category
	Tags         []model.Tag
	Difficulties []model.Difficulty
}

// renderPage executes the page into a buffer so a template failure never
// leaves a half-written response.
func renderPage(s *server.Server, w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := pageTemplates[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		requestLogger(s, r).Error("failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func renderNotFound(s *server.Server, w http.ResponseWriter, r *http.Request) {
	meta := newPageMeta(s, r, "Not Found")
	renderPage(s, w, r, http.StatusNotFound, "error", errorPage{
		pageMeta: meta,
		Heading:  "Page not found",
		Message:  "The page you are looking for does not exist.",
	})
}

func renderUnavailable(s *server.Server, w http.ResponseWriter, r *http.Request) {
	meta := newPageMeta(s, r, "Unavailable")
	renderPage(s, w, r, http.StatusServiceUnavailable, "error", errorPage{
		pageMeta: meta,
		Heading:  "Temporarily unavailable",
		Message:  "Content could not be loaded. Please try again shortly.",
	})
}

// handleNotFound answers unmatched routes: JSON under /api, the 404 page
// everywhere else.
func handleNotFound(s *server.Server) http.Handler {
	return s.SessionMiddleware.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}
		renderNotFound(s, w, r)
	}))
}
