// Package model defines the content records served by CheatSheet Hub.
//
// Records are owned by the headless CMS; this package only describes their
// wire shape (Directus field names) and offers read helpers for templates.
//
// # Core Models
//
//   - Cheatsheet: a Markdown reference document with lifecycle Status
//   - Category: optional grouping of cheatsheets, ordered by Sort then Name
//   - Tag: free-form label joined to cheatsheets through CheatsheetTag
//   - CheatsheetTag, CheatsheetRelated: many-to-many join rows
//
// # Relations
//
// A relation field holds either a bare identifier or the expanded record,
// depending on which fields the query requested. Ref models both cases so
// callers must handle the unexpanded one:
//
//	if category, ok := sheet.Category.Item(); ok {
//	    fmt.Println(category.Name)
//	} else if !sheet.Category.IsZero() {
//	    fmt.Println("category id", sheet.Category.ID())
//	}
//
// # Writes
//
// CheatsheetInput is the create/update payload. Each field is a Field that
// is either absent, explicitly null, or set, so partial updates only send
// what the caller supplied.
package model
