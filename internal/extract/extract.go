// Package extract turns a free-form sentence into a persisted calendar
// event: title extraction, date-phrase extraction, and category
// inference, each a fixed ordered heuristic scan.
package extract

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Tiliavir/eventcal/internal/dateparse"
	applog "github.com/Tiliavir/eventcal/internal/log"
	"github.com/Tiliavir/eventcal/internal/model"
)

const maxTitleLen = 100

// introducers are scanned in order; the text after the first match is
// the candidate title.
var introducers = []string{
	"reminder to",
	"reminder for",
	"schedule",
	"add event",
	"add to calendar",
	"create event",
	"plan for",
	"meeting for",
	"appointment for",
}

// dateMarkers truncate the candidate title at the first occurrence.
var dateMarkers = []string{" on ", " at ", " tomorrow", " next ", " this ", " in "}

// dateIndicators are scanned in order to locate the date phrase. The
// prepositions yield the text after the word; the keyword indicators
// (tomorrow, next, this, coming) keep the word itself as the head of
// the phrase so the parser can resolve it.
var dateIndicators = []struct {
	word    string
	keyword bool
}{
	{"on", false},
	{"for", false},
	{"at", false},
	{"tomorrow", true},
	{"next", true},
	{"this", true},
	{"coming", true},
}

// dateCutoffs truncate the date phrase at the first occurrence.
var dateCutoffs = []string{" at ", " to ", " with ", " for ", " because "}

// categoryKeywords is scanned in fixed priority order; the first
// category with any keyword hit wins.
var categoryKeywords = []struct {
	category model.Category
	words    []string
}{
	{model.CategoryFinance, []string{"tax", "budget", "bank", "money", "payment", "bill", "invest", "loan", "credit", "finance"}},
	{model.CategoryHealth, []string{"doctor", "gym", "workout", "meditation", "therapy", "exercise", "fitness", "medical", "health"}},
	{model.CategoryCareer, []string{"interview", "resume", "job", "meeting", "networking", "career"}},
	{model.CategoryLearning, []string{"class", "course", "study", "tutorial", "lesson", "training", "workshop", "learn"}},
}

// Store is the persistence contract the extractor needs.
type Store interface {
	Add(draft model.Draft) (model.Event, error)
}

// Extractor binds the text heuristics to a store.
type Extractor struct {
	store Store
	now   func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock overrides the reference "today" used for date resolution.
func WithClock(now func() time.Time) Option {
	return func(x *Extractor) { x.now = now }
}

// New creates an Extractor persisting through s.
func New(s Store, opts ...Option) *Extractor {
	x := &Extractor{store: s, now: time.Now}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// CreateFromText extracts an event from text and persists it. By
// contract every internal failure is caught and logged here; a nil
// event means "could not create an event from this text".
func (x *Extractor) CreateFromText(text string) (event *model.Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			applog.Error("event extraction panicked", fmt.Errorf("%v", r), "text", text)
			event, err = nil, fmt.Errorf("extracting event from %q: %v", text, r)
		}
	}()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty input text")
	}

	draft := model.Draft{
		Title:    ExtractTitle(text),
		Category: InferCategory(text),
		Date:     dateparse.Parse(ExtractDatePhrase(text), x.now()).Date,
	}

	added, err := x.store.Add(draft)
	if err != nil {
		applog.Error("could not persist extracted event", err, "title", draft.Title)
		return nil, fmt.Errorf("persisting extracted event: %w", err)
	}
	return &added, nil
}

// ExtractTitle returns the event title for text: the part after the
// first introducer phrase, truncated at the first date marker and
// capitalized. Without an introducer the whole input is the title,
// verbatim.
func ExtractTitle(text string) string {
	lower := strings.ToLower(text)

	title := text
	for _, intro := range introducers {
		idx := strings.Index(lower, intro)
		if idx < 0 {
			continue
		}
		title = strings.TrimSpace(text[idx+len(intro):])

		lowerTitle := strings.ToLower(title)
		cut := len(title)
		for _, marker := range dateMarkers {
			if i := strings.Index(lowerTitle, marker); i >= 0 && i < cut {
				cut = i
			}
		}
		title = capitalize(strings.TrimSpace(title[:cut]))
		break
	}

	if title == "" {
		title = text
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		title = string([]rune(title)[:maxTitleLen-3]) + "..."
	}
	return title
}

// ExtractDatePhrase returns the date phrase for text, defaulting to
// "today" when no indicator is present.
func ExtractDatePhrase(text string) string {
	lower := strings.ToLower(text)

	for _, ind := range dateIndicators {
		idx := indexWord(lower, ind.word)
		if idx < 0 {
			continue
		}
		var phrase string
		if ind.keyword {
			phrase = lower[idx:]
		} else {
			phrase = lower[idx+len(ind.word):]
		}
		phrase = strings.TrimSpace(phrase)

		cut := len(phrase)
		for _, cutoff := range dateCutoffs {
			if i := strings.Index(phrase, cutoff); i >= 0 && i < cut {
				cut = i
			}
		}
		phrase = strings.TrimSpace(phrase[:cut])
		if phrase != "" {
			return phrase
		}
	}
	return "today"
}

// InferCategory scans the whole input against the fixed keyword sets in
// priority order (finance > health > career > learning); no hit means
// the general category.
func InferCategory(text string) model.Category {
	lower := strings.ToLower(text)
	for _, set := range categoryKeywords {
		for _, word := range set.words {
			if strings.Contains(lower, word) {
				return set.category
			}
		}
	}
	return model.CategoryGeneral
}

// indexWord finds word in text bounded by spaces (or the ends of the
// string), returning the index of its first character, or -1.
func indexWord(text, word string) int {
	for from := 0; from < len(text); {
		idx := strings.Index(text[from:], word)
		if idx < 0 {
			return -1
		}
		idx += from
		end := idx + len(word)
		beforeOK := idx == 0 || text[idx-1] == ' '
		afterOK := end == len(text) || text[end] == ' '
		if beforeOK && afterOK {
			return idx
		}
		from = idx + 1
	}
	return -1
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return strings.ToUpper(string(r)) + s[size:]
}
