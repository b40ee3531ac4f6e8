// Package cmstest provides an in-memory CMS that speaks the subset of the
// Directus REST API used by cheatsheethub: item CRUD on the cheatsheets,
// categories, tags, and join collections with fields, filter, sort, limit
// and offset support, bearer-token users, and a request counter.
//
//	srv := cmstest.New()
//	defer srv.Close()
//	srv.AddUser(cmstest.User{ID: "u1", Token: "static", Admin: true})
//	client, _ := cms.New(srv.URL)
package cmstest
