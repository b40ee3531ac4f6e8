package cmstest

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/cheatsheethub/cheatsheethub/pkg/model"
)

// AddCategory stores c, assigning an id and creation date when unset.
func (s *Server) AddCategory(c model.Category) model.Category {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.insert(collectionCategories, c, nil)
	return c
}

// AddTag stores t, assigning an id and creation date when unset.
func (s *Server) AddTag(t model.Tag) model.Tag {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.insert(collectionTags, t, nil)
	return t
}

// AddCheatsheet stores c with its category reference and the given tags.
// Tags and related cheatsheets on c itself are ignored; use tagIDs and Relate.
func (s *Server) AddCheatsheet(c model.Cheatsheet, tagIDs ...string) model.Cheatsheet {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	var category any
	if !c.Category.IsZero() {
		category = c.Category.ID()
	}
	s.insert(collectionCheatsheets, c, func(row item) {
		delete(row, "tags")
		delete(row, "related_cheatsheets")
		row["category"] = category
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tagID := range tagIDs {
		s.items[collectionSheetTags] = append(s.items[collectionSheetTags], item{
			"id":             s.nextID(collectionSheetTags),
			"cheatsheets_id": c.ID,
			"tags_id":        tagID,
		})
	}
	return c
}

// Relate adds a directed related-cheatsheet link.
func (s *Server) Relate(fromID, toID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[collectionRelated] = append(s.items[collectionRelated], item{
		"id":                     s.nextID(collectionRelated),
		"cheatsheets_id":         fromID,
		"related_cheatsheets_id": toID,
	})
}

// Count returns the number of stored items in collection.
func (s *Server) Count(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items[collection])
}

// Item returns a copy of a stored item.
func (s *Server) Item(collection, id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.find(collection, id)
	if row == nil {
		return nil, false
	}
	return copyItem(row), true
}

func (s *Server) insert(collection string, v any, adjust func(item)) {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("cmstest: encoding %s seed: %v", collection, err))
	}
	var row item
	if err := json.Unmarshal(data, &row); err != nil {
		panic(fmt.Sprintf("cmstest: decoding %s seed: %v", collection, err))
	}
	if adjust != nil {
		adjust(row)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := row["date_created"]; !ok {
		row["date_created"] = s.clock().UTC().Format(timeLayout)
	}
	s.items[collection] = append(s.items[collection], row)
}
