package cmstest

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const defaultLimit = 100

type fieldTree map[string]fieldTree

type query struct {
	fields fieldTree
	filter map[string]any
	sort   []string
	limit  int
	offset int
}

func parseQuery(v url.Values) (query, error) {
	q := query{limit: defaultLimit}

	fields := []string{"*"}
	if raw := v.Get("fields"); raw != "" {
		fields = strings.Split(raw, ",")
	}
	q.fields = parseFields(fields)

	if raw := v.Get("filter"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &q.filter); err != nil {
			return q, fmt.Errorf("Invalid query. Invalid JSON for filter object: %w", err)
		}
	}

	if raw := v.Get("sort"); raw != "" {
		for _, key := range strings.Split(raw, ",") {
			if key = strings.TrimSpace(key); key != "" {
				q.sort = append(q.sort, key)
			}
		}
	}

	if raw := v.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < -1 {
			return q, fmt.Errorf("Invalid query. \"limit\" must be a number")
		}
		q.limit = n
	}
	if raw := v.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return q, fmt.Errorf("Invalid query. \"offset\" must be a positive number")
		}
		q.offset = n
	}
	return q, nil
}

func parseFields(fields []string) fieldTree {
	tree := fieldTree{}
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		node := tree
		for _, part := range strings.Split(f, ".") {
			child, ok := node[part]
			if !ok {
				child = fieldTree{}
				node[part] = child
			}
			node = child
		}
	}
	return tree
}

// project builds the response object for row. "*" selects every stored
// field, with one-to-many fields as lists of join keys; nested paths expand
// relations.
func (s *Server) project(collection string, row item, tree fieldTree) item {
	out := item{}
	if _, all := tree["*"]; all {
		for k, v := range row {
			out[k] = v
		}
		for name, rel := range relations[collection] {
			if rel.kind == oneToMany {
				out[name] = joinKeys(s.joinRows(rel, row["id"]))
			}
		}
	}

	for name, sub := range tree {
		if name == "*" {
			continue
		}
		rel, isRelation := relations[collection][name]
		switch {
		case isRelation && rel.kind == oneToMany:
			rows := s.joinRows(rel, row["id"])
			if len(sub) == 0 {
				out[name] = joinKeys(rows)
				continue
			}
			list := make([]item, 0, len(rows))
			for _, join := range rows {
				list = append(list, s.project(rel.collection, join, sub))
			}
			out[name] = list
		case isRelation && len(sub) > 0:
			target := s.find(rel.collection, row[name])
			if target == nil {
				out[name] = nil
				continue
			}
			out[name] = s.project(rel.collection, target, sub)
		default:
			out[name] = row[name]
		}
	}
	return out
}

func (s *Server) joinRows(rel relation, owner any) []item {
	var rows []item
	if owner == nil {
		return rows
	}
	key := fmt.Sprint(owner)
	for _, join := range s.items[rel.collection] {
		if fmt.Sprint(join[rel.foreignKey]) == key {
			rows = append(rows, join)
		}
	}
	return rows
}

func joinKeys(rows []item) []any {
	keys := make([]any, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row["id"])
	}
	return keys
}

// match evaluates a filter rule object against row.
func (s *Server) match(collection string, row item, filter map[string]any) (bool, error) {
	for key, rule := range filter {
		ok, err := s.matchKey(collection, row, key, rule)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (s *Server) matchKey(collection string, row item, key string, rule any) (bool, error) {
	switch key {
	case "_and", "_or":
		list, ok := rule.([]any)
		if !ok {
			return false, fmt.Errorf("Invalid query. %q must be an array", key)
		}
		for _, el := range list {
			sub, ok := el.(map[string]any)
			if !ok {
				return false, fmt.Errorf("Invalid query. %q elements must be objects", key)
			}
			matched, err := s.match(collection, row, sub)
			if err != nil {
				return false, err
			}
			if key == "_or" && matched {
				return true, nil
			}
			if key == "_and" && !matched {
				return false, nil
			}
		}
		return key == "_and", nil
	}

	cond, ok := rule.(map[string]any)
	if !ok {
		return false, fmt.Errorf("Invalid query. Filter for %q must be an object", key)
	}

	rel, isRelation := relations[collection][key]
	if isRelation && !isOperatorObject(cond) {
		if rel.kind == oneToMany {
			for _, join := range s.joinRows(rel, row["id"]) {
				matched, err := s.match(rel.collection, join, cond)
				if err != nil || matched {
					return matched, err
				}
			}
			return false, nil
		}
		target := s.find(rel.collection, row[key])
		if target == nil {
			return false, nil
		}
		return s.match(rel.collection, target, cond)
	}

	for op, operand := range cond {
		matched, err := evalOperator(op, row[key], operand)
		if err != nil || !matched {
			return false, err
		}
	}
	return true, nil
}

func isOperatorObject(cond map[string]any) bool {
	for k := range cond {
		if !strings.HasPrefix(k, "_") {
			return false
		}
	}
	return len(cond) > 0
}

func evalOperator(op string, value, operand any) (bool, error) {
	switch op {
	case "_eq":
		return value != nil && equal(value, operand), nil
	case "_neq":
		return value == nil || !equal(value, operand), nil
	case "_contains":
		return value != nil && strings.Contains(fmt.Sprint(value), fmt.Sprint(operand)), nil
	case "_icontains":
		return value != nil && strings.Contains(strings.ToLower(fmt.Sprint(value)), strings.ToLower(fmt.Sprint(operand))), nil
	case "_in", "_nin":
		list, ok := operand.([]any)
		if !ok {
			return false, fmt.Errorf("Invalid query. %q requires an array", op)
		}
		found := false
		for _, el := range list {
			if value != nil && equal(value, el) {
				found = true
				break
			}
		}
		return found == (op == "_in"), nil
	case "_null":
		return (value == nil) == truthy(operand), nil
	case "_nnull":
		return (value != nil) == truthy(operand), nil
	case "_gt", "_gte", "_lt", "_lte":
		if value == nil {
			return false, nil
		}
		c := compare(value, operand)
		switch op {
		case "_gt":
			return c > 0, nil
		case "_gte":
			return c >= 0, nil
		case "_lt":
			return c < 0, nil
		default:
			return c <= 0, nil
		}
	}
	return false, fmt.Errorf("Invalid query. Unknown filter operator %q", op)
}

func equal(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "1"
	case float64:
		return t != 0
	}
	return false
}

// compare orders nulls after every value.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	if x, ok := a.(float64); ok {
		if y, ok := b.(float64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// sortItems orders rows by the sort keys; a "-" prefix sorts descending.
// Nulls sort last ascending and first descending.
func sortItems(rows []item, keys []string) {
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, key := range keys {
			field, desc := strings.CutPrefix(key, "-")
			c := compare(rows[i][field], rows[j][field])
			if c == 0 {
				continue
			}
			if desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func page(rows []item, limit, offset int) []item {
	if offset >= len(rows) {
		return rows[:0]
	}
	rows = rows[offset:]
	if limit >= 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
