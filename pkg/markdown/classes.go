package markdown

import (
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Classes applied to rendered elements.
const (
	ClassH1         = "md-h1"
	ClassH2         = "md-h2"
	ClassH3         = "md-h3"
	ClassH4         = "md-h4"
	ClassParagraph  = "md-p"
	ClassUnordered  = "md-ul"
	ClassOrdered    = "md-ol"
	ClassListItem   = "md-li"
	ClassLink       = "md-link"
	ClassCode       = "md-code"
	ClassBlockquote = "md-blockquote"
	ClassTable      = "md-table"
	ClassTableHead  = "md-thead"
	ClassTableTh    = "md-th"
	ClassTableTd    = "md-td"
	ClassRule       = "md-hr"
)

var headingClasses = [...]string{ClassH1, ClassH2, ClassH3, ClassH4}

// classTransformer assigns presentation classes to the parsed document.
type classTransformer struct{}

func (classTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level <= len(headingClasses) {
				setClass(node, headingClasses[node.Level-1])
			}
		case *ast.Paragraph:
			setClass(node, ClassParagraph)
		case *ast.List:
			if node.IsOrdered() {
				setClass(node, ClassOrdered)
			} else {
				setClass(node, ClassUnordered)
			}
		case *ast.ListItem:
			setClass(node, ClassListItem)
		case *ast.Link, *ast.AutoLink:
			setClass(node, ClassLink)
			node.SetAttributeString("target", []byte("_blank"))
			node.SetAttributeString("rel", []byte("noopener noreferrer"))
		case *ast.CodeSpan:
			setClass(node, ClassCode)
		case *ast.Blockquote:
			setClass(node, ClassBlockquote)
		case *ast.ThematicBreak:
			setClass(node, ClassRule)
		case *east.Table:
			setClass(node, ClassTable)
		case *east.TableHeader:
			setClass(node, ClassTableHead)
		case *east.TableCell:
			if _, header := node.Parent().(*east.TableHeader); header {
				setClass(node, ClassTableTh)
			} else {
				setClass(node, ClassTableTd)
			}
		}
		return ast.WalkContinue, nil
	})
}

func setClass(n ast.Node, class string) {
	n.SetAttributeString("class", []byte(class))
}
