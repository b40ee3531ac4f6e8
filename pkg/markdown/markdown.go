package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github-dark"

// Renderer converts Markdown to HTML.
type Renderer struct {
	md    goldmark.Markdown
	style string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyle selects the chroma highlighting style.
func WithStyle(name string) Option {
	return func(r *Renderer) {
		r.style = name
	}
}

// New creates a renderer. It fails for unknown highlighting styles.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{style: DefaultStyle}
	for _, opt := range opts {
		opt(r)
	}
	if !StyleExists(r.style) {
		return nil, fmt.Errorf("markdown: unknown highlight style %q", r.style)
	}

	r.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(r.style),
				highlighting.WithFormatOptions(
					html.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(classTransformer{}, 100),
			),
		),
	)
	return r, nil
}

// Style returns the highlighting style name.
func (r *Renderer) Style() string {
	return r.style
}

// Render writes the HTML for source to w.
func (r *Renderer) Render(w io.Writer, source []byte) error {
	if err := r.md.Convert(source, w); err != nil {
		return fmt.Errorf("markdown: %w", err)
	}
	return nil
}

// HTML renders source for inclusion in a template.
func (r *Renderer) HTML(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, []byte(source)); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// StyleExists reports whether name is a registered chroma style.
func StyleExists(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// Stylesheet returns the CSS for the chroma classes emitted by a Renderer
// using the named style.
func Stylesheet(name string) ([]byte, error) {
	if !StyleExists(name) {
		return nil, fmt.Errorf("markdown: unknown highlight style %q", name)
	}
	var buf bytes.Buffer
	formatter := html.New(html.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(name)); err != nil {
		return nil, fmt.Errorf("markdown: writing %s stylesheet: %w", name, err)
	}
	return buf.Bytes(), nil
}
