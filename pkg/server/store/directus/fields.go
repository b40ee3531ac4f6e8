package directus

import "github.com/cheatsheethub/cheatsheethub/pkg/cms"

const (
	collectionCheatsheets = "cheatsheets"
	collectionCategories  = "categories"
	collectionTags        = "tags"
)

var (
	categoryBadgeFields = []string{"id", "name", "slug", "icon"}
	tagFields           = []string{"id", "name", "slug", "color"}

	listFields = fields(
		[]string{
			"id", "slug", "title", "summary", "status",
			"target_name", "target_version", "difficulty",
			"date_created", "date_updated",
		},
		cms.Expand("category", categoryBadgeFields...),
		cms.Expand("tags.tags_id", tagFields...),
	)

	detailFields = fields(
		[]string{"*"},
		cms.Expand("category", categoryBadgeFields...),
		cms.Expand("tags.tags_id", tagFields...),
		cms.Expand("related_cheatsheets.related_cheatsheets_id", "id", "slug", "title", "summary", "difficulty"),
	)

	editorFields = fields(
		[]string{"*"},
		cms.Expand("category", "id", "name", "slug"),
		cms.Expand("tags.tags_id", tagFields...),
	)

	myFields = fields(
		[]string{"id", "slug", "title", "summary", "status", "date_created", "date_updated"},
		cms.Expand("category", "id", "name", "slug"),
	)

	categoryListFields   = []string{"id", "name", "slug", "description", "icon", "sort"}
	categoryDetailFields = []string{"id", "name", "slug", "description", "icon"}
)

func fields(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
