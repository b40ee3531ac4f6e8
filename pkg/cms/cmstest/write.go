package cmstest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cheatsheethub/cheatsheethub/pkg/model"
)

type payloadError struct {
	code    string
	message string
}

func (e *payloadError) Error() string {
	return e.message
}

func invalidPayload(format string, args ...any) error {
	return &payloadError{code: "INVALID_PAYLOAD", message: fmt.Sprintf(format, args...)}
}

func writeWriteError(w http.ResponseWriter, err error) {
	var we *payloadError
	if errors.As(err, &we) {
		writeError(w, http.StatusBadRequest, we.code, we.message)
		return
	}
	writeError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", err.Error())
}

// apply copies scalar and many-to-one payload fields onto row and validates
// the result. One-to-many fields are handled by applyRelations once the row
// has a primary key.
func (s *Server) apply(collection string, row item, payload map[string]any, create bool) error {
	for field, value := range payload {
		if systemFields[field] {
			continue
		}
		rel, isRelation := relations[collection][field]
		switch {
		case isRelation && rel.kind == oneToMany:
			if _, err := joinElements(value); err != nil {
				return invalidPayload("Invalid payload. %q: %s", field, err)
			}
			continue
		case isRelation && value != nil:
			if s.find(rel.collection, value) == nil {
				return &payloadError{
					code:    "INVALID_FOREIGN_KEY",
					message: fmt.Sprintf("Invalid foreign key for field %q in collection %q.", field, collection),
				}
			}
		}
		row[field] = value
	}

	if create {
		for _, field := range requiredFields[collection] {
			if v, _ := row[field].(string); strings.TrimSpace(v) == "" {
				return invalidPayload("Validation failed for field %q. Value is required.", field)
			}
		}
	}

	if collection == collectionCheatsheets {
		if v, ok := row["status"]; ok {
			str, _ := v.(string)
			if _, err := model.StatusString(str); err != nil || v == nil {
				return invalidPayload("Validation failed for field \"status\". Value %v is not allowed.", v)
			}
		}
		if v, ok := row["difficulty"]; ok && v != nil {
			str, _ := v.(string)
			if _, err := model.DifficultyString(str); err != nil {
				return invalidPayload("Validation failed for field \"difficulty\". Value %v is not allowed.", v)
			}
		}
	}

	for _, field := range uniqueFields[collection] {
		value, ok := row[field]
		if !ok || value == nil {
			continue
		}
		for _, other := range s.items[collection] {
			if other["id"] != nil && fmt.Sprint(other["id"]) == fmt.Sprint(row["id"]) {
				continue
			}
			if fmt.Sprint(other[field]) == fmt.Sprint(value) {
				return &payloadError{
					code:    "RECORD_NOT_UNIQUE",
					message: fmt.Sprintf("Value for field %q in collection %q has to be unique.", field, collection),
				}
			}
		}
	}
	return nil
}

// joinElements accepts null, or a list whose elements are join objects or
// existing join keys.
func joinElements(value any) ([]any, error) {
	if value == nil {
		return nil, nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil, errors.New("expected a list")
	}
	for _, el := range list {
		switch el.(type) {
		case map[string]any, float64, string:
		default:
			return nil, fmt.Errorf("unsupported element %v", el)
		}
	}
	return list, nil
}

// applyRelations replaces the one-to-many associations named in payload.
// Existing join rows referenced by key are kept; join objects create rows.
func (s *Server) applyRelations(collection string, row item, payload map[string]any) {
	for field, rel := range relations[collection] {
		if rel.kind != oneToMany {
			continue
		}
		value, ok := payload[field]
		if !ok {
			continue
		}
		list, _ := joinElements(value)

		keep := map[string]bool{}
		var create []map[string]any
		for _, el := range list {
			switch v := el.(type) {
			case map[string]any:
				create = append(create, v)
			default:
				keep[fmt.Sprint(v)] = true
			}
		}

		owner := fmt.Sprint(row["id"])
		s.items[rel.collection] = filterRows(s.items[rel.collection], func(join item) bool {
			return fmt.Sprint(join[rel.foreignKey]) != owner || keep[fmt.Sprint(join["id"])]
		})

		for _, fields := range create {
			join := item{}
			for k, v := range fields {
				if k == "id" {
					continue
				}
				if target, isRelation := relations[rel.collection][k]; isRelation && s.find(target.collection, v) == nil {
					continue
				}
				join[k] = v
			}
			join["id"] = s.nextID(rel.collection)
			join[rel.foreignKey] = row["id"]
			s.items[rel.collection] = append(s.items[rel.collection], join)
		}
	}
}
