package loadtest

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Tiliavir/eventcal/internal/model"
	"github.com/Tiliavir/eventcal/internal/timeutil"
)

// resource is a catalog entry that a synthetic event can be linked to,
// overriding its title and category.
type resource struct {
	title    string
	category model.Category
}

// learningResources is the fixed catalog; roughly a quarter of the
// generated events link to one.
var learningResources = []resource{
	{"Intro to Budgeting", model.CategoryFinance},
	{"Filing Your First Tax Return", model.CategoryFinance},
	{"Resume Writing Workshop", model.CategoryCareer},
	{"Mock Interview Practice", model.CategoryCareer},
	{"Guided Meditation Session", model.CategoryHealth},
	{"Beginner Strength Training", model.CategoryHealth},
	{"Touch Typing Course", model.CategoryLearning},
	{"Study Skills Seminar", model.CategoryLearning},
}

// Generator produces deterministic synthetic events from a seed.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator creates a seeded Generator anchored at the current time.
func NewGenerator(seed int64) *Generator {
	return NewGeneratorAt(seed, time.Now())
}

// NewGeneratorAt creates a seeded Generator with an explicit reference
// time, so tests can pin the generated window.
func NewGeneratorAt(seed int64, now time.Time) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed)), now: now}
}

// Draft generates the i-th synthetic event: a random date within the
// next 30 days at a random 15-minute-quantized time of day, a duration
// between 30 and 180 minutes, and a uniformly random category. A
// quarter of the events link to a learning resource, which overrides
// title and category.
func (g *Generator) Draft(i int) model.Draft {
	day := timeutil.StartOfDay(g.now).AddDate(0, 0, g.rng.Intn(30))
	date := day.
		Add(time.Duration(g.rng.Intn(24)) * time.Hour).
		Add(time.Duration(g.rng.Intn(4)*15) * time.Minute)
	duration := 30 + g.rng.Intn(151)

	draft := model.Draft{
		Title:       fmt.Sprintf("Load Test Event %d", i+1),
		Category:    model.Categories[g.rng.Intn(len(model.Categories))],
		Date:        date,
		Description: fmt.Sprintf("Synthetic event (%d min)", duration),
	}

	if g.rng.Intn(4) == 0 {
		res := learningResources[g.rng.Intn(len(learningResources))]
		draft.Title = res.title
		draft.Category = res.category
	}
	return draft
}
