package model

//go:generate go run github.com/dmarkham/enumer -type Difficulty -trimprefix Difficulty -transform lower -json -text -output difficulty.gen.go

// Difficulty is the optional audience level of a cheatsheet.
type Difficulty int

const (
	DifficultyBeginner Difficulty = iota
	DifficultyIntermediate
	DifficultyAdvanced
)

// Label returns the display name used on badges.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyBeginner:
		return "Beginner"
	case DifficultyIntermediate:
		return "Intermediate"
	case DifficultyAdvanced:
		return "Advanced"
	default:
		return d.String()
	}
}
