// Package classify parses recording filenames into speaker and volume category
// and defines the acceptable loudness band per category.
package classify

import "strings"

// Defaults returned when a filename does not follow the naming convention.
const (
	// UnknownSpeaker is the speaker ID for filenames without enough segments.
	UnknownSpeaker = "Unknown"
	// UnknownCategory is the category for filenames without a recognized volume token.
	UnknownCategory = "unknown"
)

// Category is a named loudness band with inclusive dB bounds.
type Category struct {
	// Name is the category token as it appears in filenames (lowercase).
	Name string
	// MinDB is the lower bound of the acceptable band in dB, inclusive.
	MinDB float64
	// MaxDB is the upper bound of the acceptable band in dB, inclusive.
	MaxDB float64
	// DisplayRange is the human-readable band shown in reports.
	DisplayRange string
}

// Contains reports whether db falls inside the category's band, bounds inclusive.
func (c Category) Contains(db float64) bool {
	return c.MinDB <= db && db <= c.MaxDB
}

// Categories is an immutable lookup of volume categories by name.
type Categories map[string]Category

// DefaultCategories returns the volume categories used by the recording workflow:
// "soft" (-35dB to -25dB) and "comfortable" (-25dB to -15dB).
func DefaultCategories() Categories {
	return Categories{
		"soft":        {Name: "soft", MinDB: -35, MaxDB: -25, DisplayRange: "-35dB to -25dB"},
		"comfortable": {Name: "comfortable", MinDB: -25, MaxDB: -15, DisplayRange: "-25dB to -15dB"},
	}
}

// Classify parses a recording filename into a speaker ID and declared volume
// category. Filenames follow <speaker>_..._<category>....wav with at least
// three underscore-separated segments; the category is the first segment that
// case-insensitively matches a known category name. Anything else degrades to
// UnknownSpeaker/UnknownCategory rather than erroring.
func Classify(filename string, categories Categories) (speakerID, category string) {
	speakerID = UnknownSpeaker
	category = UnknownCategory

	parts := strings.Split(strings.TrimSuffix(filename, ".wav"), "_")
	if len(parts) < 3 {
		return speakerID, category
	}

	speakerID = parts[0]
	for _, part := range parts {
		if _, ok := categories[strings.ToLower(part)]; ok {
			category = strings.ToLower(part)
			break
		}
	}
	return speakerID, category
}
