package directus

import "github.com/cheatsheethub/cheatsheethub/pkg/cms/cmstest"

func cmstestUser(id string) cmstest.User {
	return cmstest.User{ID: id, Token: id + "-token"}
}
