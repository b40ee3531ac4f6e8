package model

//go:generate go run github.com/dmarkham/enumer -type Status -trimprefix Status -transform lower -json -text -output status.gen.go

// Status is the publication lifecycle of a cheatsheet. Any state may move to
// any other state; only StatusPublished is publicly visible.
type Status int

const (
	StatusDraft Status = iota
	StatusPublished
	StatusArchived
)

// Visible reports whether records in this state are shown on public pages.
func (s Status) Visible() bool {
	return s == StatusPublished
}
