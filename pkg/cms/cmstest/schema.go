package cmstest

type relationKind int

const (
	manyToOne relationKind = iota
	oneToMany
)

type relation struct {
	kind       relationKind
	collection string
	// foreignKey is the field on the related collection pointing back (o2m only).
	foreignKey string
}

const (
	collectionCheatsheets = "cheatsheets"
	collectionCategories  = "categories"
	collectionTags        = "tags"
	collectionSheetTags   = "cheatsheets_tags"
	collectionRelated     = "cheatsheets_related"
)

var relations = map[string]map[string]relation{
	collectionCheatsheets: {
		"category":            {kind: manyToOne, collection: collectionCategories},
		"tags":                {kind: oneToMany, collection: collectionSheetTags, foreignKey: "cheatsheets_id"},
		"related_cheatsheets": {kind: oneToMany, collection: collectionRelated, foreignKey: "cheatsheets_id"},
	},
	collectionSheetTags: {
		"cheatsheets_id": {kind: manyToOne, collection: collectionCheatsheets},
		"tags_id":        {kind: manyToOne, collection: collectionTags},
	},
	collectionRelated: {
		"cheatsheets_id":         {kind: manyToOne, collection: collectionCheatsheets},
		"related_cheatsheets_id": {kind: manyToOne, collection: collectionCheatsheets},
	},
}

var uniqueFields = map[string][]string{
	collectionCheatsheets: {"slug"},
	collectionCategories:  {"slug"},
	collectionTags:        {"slug"},
}

var requiredFields = map[string][]string{
	collectionCheatsheets: {"title", "slug"},
	collectionCategories:  {"name", "slug"},
	collectionTags:        {"name", "slug"},
}

// Join collections use auto-increment integer keys; the rest use UUIDs.
var integerKeys = map[string]bool{
	collectionSheetTags: true,
	collectionRelated:   true,
}

// Fields set by the CMS and ignored in write payloads.
var systemFields = map[string]bool{
	"id":           true,
	"user_created": true,
	"user_updated": true,
	"date_created": true,
	"date_updated": true,
}
