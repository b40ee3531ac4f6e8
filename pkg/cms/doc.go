// Package cms is a client for the headless CMS REST API (Directus).
//
// The client is an explicitly constructed value. Anonymous reads use the
// client as built; authenticated calls bind a bearer token with WithToken,
// which returns a copy and never mutates the receiver.
//
// # Queries
//
// Query maps onto the REST query parameters:
//
//	q := cms.Query{
//	    Fields: append([]string{"id", "slug", "title"}, cms.Expand("category", "id", "name")...),
//	    Filter: cms.Where("status", cms.Eq("published")).Where("category.slug", cms.Eq("git")),
//	    Sort:   []string{"-date_created"},
//	    Limit:  20,
//	}
//	sheets, err := cms.ReadItems[model.Cheatsheet](ctx, client, "cheatsheets", q)
//
// Error responses are returned as *Error; transport failures are wrapped.
package cms
