package model

import (
	"strconv"
	"strings"
	"time"
)

// Reference is an external link listed under a cheatsheet.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Label is the link text: the title, or the URL when untitled.
func (r Reference) Label() string {
	if r.Title != "" {
		return r.Title
	}
	return r.URL
}

// Cheatsheet is a short Markdown reference document.
//
// Fields that were not part of the query projection keep their zero value.
type Cheatsheet struct {
	ID                 string                   `json:"id"`
	Slug               string                   `json:"slug"`
	Title              string                   `json:"title"`
	Summary            string                   `json:"summary,omitempty"`
	Body               string                   `json:"body,omitempty"`
	Status             Status                   `json:"status"`
	Category           Ref[Category]            `json:"category,omitzero"`
	Tags               []Ref[CheatsheetTag]     `json:"tags,omitempty"`
	TargetName         string                   `json:"target_name,omitempty"`
	TargetVersion      string                   `json:"target_version,omitempty"`
	Difficulty         *Difficulty              `json:"difficulty,omitempty"`
	References         []Reference              `json:"references,omitempty"`
	RelatedCheatsheets []Ref[CheatsheetRelated] `json:"related_cheatsheets,omitempty"`
	SEODescription     string                   `json:"seo_description,omitempty"`
	OGImage            string                   `json:"og_image,omitempty"`
	UserCreated        string                   `json:"user_created,omitempty"`
	UserUpdated        string                   `json:"user_updated,omitempty"`
	DateCreated        time.Time                `json:"date_created,omitzero"`
	DateUpdated        *time.Time               `json:"date_updated,omitempty"`
}

func (c Cheatsheet) Key() string {
	return c.ID
}

// CategoryItem returns the expanded category, if any.
func (c Cheatsheet) CategoryItem() (Category, bool) {
	return c.Category.Item()
}

// TagItems returns the expanded tags in join order. Unexpanded joins are skipped.
func (c Cheatsheet) TagItems() []Tag {
	tags := make([]Tag, 0, len(c.Tags))
	for _, ref := range c.Tags {
		join, ok := ref.Item()
		if !ok {
			continue
		}
		if tag, ok := join.TagsID.Item(); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// RelatedItems returns the expanded related cheatsheets in join order.
func (c Cheatsheet) RelatedItems() []Cheatsheet {
	related := make([]Cheatsheet, 0, len(c.RelatedCheatsheets))
	for _, ref := range c.RelatedCheatsheets {
		join, ok := ref.Item()
		if !ok {
			continue
		}
		if sheet, ok := join.RelatedCheatsheetsID.Item(); ok {
			related = append(related, sheet)
		}
	}
	return related
}

// Target is "name version", "name", or empty.
func (c Cheatsheet) Target() string {
	return strings.TrimSpace(c.TargetName + " " + c.TargetVersion)
}

// Description is the SEO description falling back to the summary.
func (c Cheatsheet) Description() string {
	if c.SEODescription != "" {
		return c.SEODescription
	}
	return c.Summary
}

// LastModified is the update time, or the creation time for untouched records.
func (c Cheatsheet) LastModified() time.Time {
	if c.DateUpdated != nil {
		return *c.DateUpdated
	}
	return c.DateCreated
}

// CheatsheetTag joins a cheatsheet to a tag.
type CheatsheetTag struct {
	ID            int             `json:"id,omitempty"`
	CheatsheetsID Ref[Cheatsheet] `json:"cheatsheets_id,omitzero"`
	TagsID        Ref[Tag]        `json:"tags_id,omitzero"`
}

func (j CheatsheetTag) Key() string {
	return strconv.Itoa(j.ID)
}

// CheatsheetRelated is a directed link from one cheatsheet to another.
type CheatsheetRelated struct {
	ID                   int             `json:"id,omitempty"`
	CheatsheetsID        Ref[Cheatsheet] `json:"cheatsheets_id,omitzero"`
	RelatedCheatsheetsID Ref[Cheatsheet] `json:"related_cheatsheets_id,omitzero"`
}

func (j CheatsheetRelated) Key() string {
	return strconv.Itoa(j.ID)
}

// TagLink is the write form of a tag association.
type TagLink struct {
	TagsID string `json:"tags_id"`
}

// RelatedLink is the write form of a related-cheatsheet association.
type RelatedLink struct {
	RelatedCheatsheetsID string `json:"related_cheatsheets_id"`
}

// CheatsheetInput is the payload for create and partial update. The CMS
// assigns id, ownership, and timestamps.
type CheatsheetInput struct {
	Title              Field[string]        `json:"title,omitzero"`
	Slug               Field[string]        `json:"slug,omitzero"`
	Summary            Field[string]        `json:"summary,omitzero"`
	Body               Field[string]        `json:"body,omitzero"`
	Status             Field[Status]        `json:"status,omitzero"`
	Category           Field[string]        `json:"category,omitzero"`
	Tags               Field[[]TagLink]     `json:"tags,omitzero"`
	TargetName         Field[string]        `json:"target_name,omitzero"`
	TargetVersion      Field[string]        `json:"target_version,omitzero"`
	Difficulty         Field[Difficulty]    `json:"difficulty,omitzero"`
	References         Field[[]Reference]   `json:"references,omitzero"`
	RelatedCheatsheets Field[[]RelatedLink] `json:"related_cheatsheets,omitzero"`
	SEODescription     Field[string]        `json:"seo_description,omitzero"`
	OGImage            Field[string]        `json:"og_image,omitzero"`
}
