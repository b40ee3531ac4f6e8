// Package markdown renders cheatsheet bodies to HTML.
//
// The renderer is goldmark with GitHub Flavored Markdown, chroma syntax
// highlighting emitted as CSS classes, and automatic heading IDs. Raw HTML in
// the source is omitted. Structural elements receive fixed classes that the
// site stylesheet targets; the highlighting colors come from Stylesheet.
//
// Rendering is deterministic and safe for concurrent use.
package markdown
