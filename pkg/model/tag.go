package model

import "time"

const (
	defaultTagBackground = "#e5e7eb"
	defaultTagForeground = "#374151"
)

// Tag is a label attached to cheatsheets through CheatsheetTag rows.
type Tag struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Color       string    `json:"color,omitempty"`
	DateCreated time.Time `json:"date_created,omitzero"`
}

func (t Tag) Key() string {
	return t.ID
}

// Background is the tag color at low opacity (hex alpha "20").
func (t Tag) Background() string {
	if t.Color == "" {
		return defaultTagBackground
	}
	return t.Color + "20"
}

// Foreground is the tag color, or a neutral gray for uncolored tags.
func (t Tag) Foreground() string {
	if t.Color == "" {
		return defaultTagForeground
	}
	return t.Color
}
