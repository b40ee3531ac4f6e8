package benchmark

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/cheatsheethub/cheatsheethub/pkg/cms"
	"github.com/cheatsheethub/cheatsheethub/pkg/cms/cmstest"
	"github.com/cheatsheethub/cheatsheethub/pkg/config"
	"github.com/cheatsheethub/cheatsheethub/pkg/markdown"
	"github.com/cheatsheethub/cheatsheethub/pkg/model"
	"github.com/cheatsheethub/cheatsheethub/pkg/server"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/endpoints"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store/directus"
	"github.com/cheatsheethub/cheatsheethub/pkg/session"
)

// cheatsheetBody builds a document shaped like a typical cheatsheet:
// sections of prose, command tables, and fenced code.
func cheatsheetBody(sections int) string {
	var sb strings.Builder
	sb.WriteString("# Git\n\nEveryday commands.\n\n")
	for i := 0; i < sections; i++ {
		fmt.Fprintf(&sb, "## Section %d\n\n", i)
		sb.WriteString("Use `git status` to inspect the **working tree**. See [docs](https://git-scm.com).\n\n")
		sb.WriteString("| Command | Description |\n|---|---|\n| `git add -p` | Stage hunks |\n| `git commit --amend` | Rewrite the last commit |\n\n")
		sb.WriteString("```bash\ngit log --oneline --graph --decorate\ngit rebase -i HEAD~3\n```\n\n")
		sb.WriteString("- [x] staged\n- [ ] pushed\n\n")
	}
	return sb.String()
}

func BenchmarkRender(b *testing.B) {
	renderer, err := markdown.New()
	if err != nil {
		b.Fatal(err)
	}

	for _, sections := range []int{1, 10, 50} {
		source := []byte(cheatsheetBody(sections))
		b.Run(fmt.Sprintf("sections=%d", sections), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(source)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if err := renderer.Render(io.Discard, source); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func seed(srv *cmstest.Server, n int) {
	categories := []model.Category{
		srv.AddCategory(model.Category{Name: "Version Control", Slug: "vcs"}),
		srv.AddCategory(model.Category{Name: "Containers", Slug: "containers"}),
	}
	tags := []model.Tag{
		srv.AddTag(model.Tag{Name: "git", Slug: "git", Color: "#f05032"}),
		srv.AddTag(model.Tag{Name: "docker", Slug: "docker"}),
		srv.AddTag(model.Tag{Name: "cli", Slug: "cli"}),
	}
	body := cheatsheetBody(5)
	for i := 0; i < n; i++ {
		srv.AddCheatsheet(model.Cheatsheet{
			Slug:     fmt.Sprintf("sheet-%d", i),
			Title:    fmt.Sprintf("Sheet %d", i),
			Summary:  "A benchmark cheatsheet",
			Body:     body,
			Status:   model.StatusPublished,
			Category: model.RefTo[model.Category](categories[i%len(categories)].ID),
		}, tags[i%len(tags)].ID, tags[(i+1)%len(tags)].ID)
	}
}

func BenchmarkListCheatsheets(b *testing.B) {
	srv := cmstest.New()
	defer srv.Close()
	seed(srv, 200)

	client, err := cms.New(srv.URL)
	if err != nil {
		b.Fatal(err)
	}
	contents := directus.NewContentStore(client)
	ctx := context.Background()

	for _, opts := range []store.ListOptions{
		{Limit: 20},
		{Category: "vcs", Limit: 50},
		{Tag: "docker", Limit: 50},
		{Search: "sheet 1", Limit: 50},
	} {
		b.Run(fmt.Sprintf("%+v", opts), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := contents.ListCheatsheets(ctx, opts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkPages(b *testing.B) {
	srv := cmstest.New()
	defer srv.Close()
	seed(srv, 200)

	client, err := cms.New(srv.URL)
	if err != nil {
		b.Fatal(err)
	}
	sessions, err := session.NewManager(session.Config{Secret: []byte("benchmark-session-secret-0123456789")})
	if err != nil {
		b.Fatal(err)
	}
	renderer, err := markdown.New()
	if err != nil {
		b.Fatal(err)
	}

	cfg := config.Default()
	cfg.CMSURL = srv.URL
	cfg.AuditEnabled = false
	s := server.NewServer(config.NewProvider(cfg), zap.NewNop(),
		directus.NewContentStore(client), directus.NewEditorStore(client), directus.NewHealthStore(client),
		sessions, renderer)
	s.AccessLog = io.Discard
	endpoints.RegisterAll(s)
	handler := s.Handler()

	for _, path := range []string{"/", "/categories/vcs", "/search?q=sheet", "/cheatsheets/sheet-7"} {
		b.Run("GET "+path, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				if w.Code != http.StatusOK {
					b.Fatalf("GET %s: status %d", path, w.Code)
				}
			}
		})
	}
}
