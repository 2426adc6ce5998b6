package model

import "time"

// Category classifies an event. The calendar UI offers the full set below;
// the text extractor only ever infers the subset it has keyword lists for
// (finance, health, career, learning, general).
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryFamily   Category = "family"
	CategorySchool   Category = "school"
	CategoryHealth   Category = "health"
	CategoryFinance  Category = "finance"
	CategoryCareer   Category = "career"
	CategoryLearning Category = "learning"
	CategoryOther    Category = "other"
	CategoryGeneral  Category = "general"
)

// Categories lists every accepted category value.
var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryFamily,
	CategorySchool,
	CategoryHealth,
	CategoryFinance,
	CategoryCareer,
	CategoryLearning,
	CategoryOther,
	CategoryGeneral,
}

// Valid reports whether c is one of the accepted category values.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Event is a single calendar event. Date carries day granularity for
// queries; time-of-day is preserved as stored.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    Category  `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
}

// Draft is an event awaiting persistence; the store assigns the ID.
type Draft struct {
	Title       string
	Category    Category
	Date        time.Time
	Description string
}
