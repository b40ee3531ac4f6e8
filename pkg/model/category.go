package model

import "time"

// Category groups cheatsheets. Categories are managed in the CMS admin only.
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Sort        *int       `json:"sort,omitempty"`
	DateCreated time.Time  `json:"date_created,omitzero"`
	DateUpdated *time.Time `json:"date_updated,omitempty"`
}

func (c Category) Key() string {
	return c.ID
}
