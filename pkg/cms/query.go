package cms

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// All requests every matching item when used as Query.Limit.
const All = -1

// Query selects, filters, and orders items. Zero values are omitted from the
// request, so the CMS defaults apply.
type Query struct {
	Fields []string
	Filter Filter
	Sort   []string
	Limit  int
	Offset int
}

// Values encodes the query as REST query parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	if len(q.Fields) > 0 {
		v.Set("fields", strings.Join(q.Fields, ","))
	}
	if len(q.Filter) > 0 {
		data, err := json.Marshal(q.Filter)
		if err == nil {
			v.Set("filter", string(data))
		}
	}
	if len(q.Sort) > 0 {
		v.Set("sort", strings.Join(q.Sort, ","))
	}
	if q.Limit != 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

// Expand prefixes each field with a relation path:
// Expand("tags.tags_id", "id", "slug") is ["tags.tags_id.id", "tags.tags_id.slug"].
func Expand(prefix string, fields ...string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = prefix + "." + f
	}
	return out
}
