package profile

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Catalog is the fixed set of sustainability categories. Every profile
// carries all of them; the scoring engine rejects anything else.
var Catalog = []string{
	"Water",
	"Energy",
	"Mobility",
	"Food",
	"Waste",
	"Wellbeing",
	"Conscious Consumption",
	"Environmental Education",
	"Green Technology",
}

// ValidCategory reports whether name is part of the catalog.
func ValidCategory(name string) bool {
	for _, c := range Catalog {
		if c == name {
			return true
		}
	}
	return false
}

// Category tracks points earned toward the next level in one dimension.
// Target doubles on every level-up; Points never decrease.
type Category struct {
	Points int `json:"points"`
	Target int `json:"target"`
	Level  int `json:"level"`
}

// Progress returns completion toward the next level as a percentage,
// capped at 100.
func (c Category) Progress() float64 {
	if c.Target <= 0 {
		return 0
	}
	pct := float64(c.Points) / float64(c.Target) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// LearnedTerm is a vocabulary entry discovered from user-submitted text.
// Weight is a category-local relative frequency scaled to [0, 1.2].
type LearnedTerm struct {
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
}

// ActivityRecord is one accepted submission. Immutable once appended.
type ActivityRecord struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
}

// LevelUp is emitted when a category's points reach its current target.
type LevelUp struct {
	Category  string `json:"category"`
	NewLevel  int    `json:"new_level"`
	NewTarget int    `json:"new_target"`
}

// Profile is the full durable state for one user: category totals,
// learned vocabulary, and activity history.
type Profile struct {
	ID         string                            `json:"id"`
	Name       string                            `json:"name"`
	TotalScore int                               `json:"total_score"`
	Level      int                               `json:"level"`
	Categories map[string]Category               `json:"categories"`
	Vocabulary map[string]map[string]LearnedTerm `json:"vocabulary"`
	History    []ActivityRecord                  `json:"history"`
	CreatedAt  time.Time                         `json:"created_at"`
}

// New creates a profile skeleton: every catalog category at zero points,
// target 100, level 1, empty vocabulary and history.
func New(id, name string) Profile {
	cats := make(map[string]Category, len(Catalog))
	for _, cat := range Catalog {
		cats[cat] = Category{Points: 0, Target: 100, Level: 1}
	}
	return Profile{
		ID:         id,
		Name:       name,
		TotalScore: 0,
		Level:      1,
		Categories: cats,
		Vocabulary: make(map[string]map[string]LearnedTerm),
		History:    []ActivityRecord{},
		CreatedAt:  time.Now().UTC(),
	}
}

// NewID returns a fresh ULID for profiles and activity records.
func NewID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// Clone returns a deep copy. The submission pipeline mutates the copy and
// publishes it only after a successful save.
func (p Profile) Clone() Profile {
	out := p
	out.Categories = make(map[string]Category, len(p.Categories))
	for name, cat := range p.Categories {
		out.Categories[name] = cat
	}
	out.Vocabulary = make(map[string]map[string]LearnedTerm, len(p.Vocabulary))
	for cat, terms := range p.Vocabulary {
		copied := make(map[string]LearnedTerm, len(terms))
		for t, info := range terms {
			copied[t] = info
		}
		out.Vocabulary[cat] = copied
	}
	out.History = make([]ActivityRecord, len(p.History))
	copy(out.History, p.History)
	return out
}

// Normalize fills in anything a stored record is missing: absent catalog
// categories, nil maps, zero targets. Loaded profiles always pass through
// here so the rest of the engine can assume a complete skeleton.
func (p *Profile) Normalize() {
	if p.Categories == nil {
		p.Categories = make(map[string]Category, len(Catalog))
	}
	for _, name := range Catalog {
		cat, ok := p.Categories[name]
		if !ok {
			p.Categories[name] = Category{Points: 0, Target: 100, Level: 1}
			continue
		}
		if cat.Target <= 0 {
			cat.Target = 100
		}
		if cat.Level < 1 {
			cat.Level = 1
		}
		p.Categories[name] = cat
	}
	if p.Vocabulary == nil {
		p.Vocabulary = make(map[string]map[string]LearnedTerm)
	}
	if p.History == nil {
		p.History = []ActivityRecord{}
	}
	if p.Level < 1 {
		p.Level = 1
	}
}
