package score

// Mode selects between the two historical scoring behaviors.
type Mode string

const (
	// ModeContextual is the canonical policy: lexicon matches, learned
	// vocabulary, structural bonuses, category factor, clamp [5, 100].
	ModeContextual Mode = "contextual"
	// ModeLegacy is the simplified variant shipped in the older client:
	// flat per-word points plus a category bonus, clamp [1, 50].
	ModeLegacy Mode = "legacy"
)

// DetailBonus awards extra points once a description exceeds MinWords.
// Tiers are evaluated in order; the first match wins.
type DetailBonus struct {
	MinWords int     `yaml:"min_words"`
	Bonus    float64 `yaml:"bonus"`
}

// Policy holds every tunable of the scoring pipeline. Both historical
// variants are expressible; neither is hard-coded into the engine.
type Policy struct {
	Mode          Mode           `yaml:"mode"`
	MinPoints     int            `yaml:"min_points"`
	MaxPoints     int            `yaml:"max_points"`
	EmptyScore    int            `yaml:"empty_score"`
	BasePerWord   float64        `yaml:"base_per_word"`
	BaseCap       float64        `yaml:"base_cap"`
	MatchBonus    float64        `yaml:"match_bonus"`
	NumericBonus  float64        `yaml:"numeric_bonus"`
	DetailBonuses []DetailBonus  `yaml:"detail_bonuses"`
	CategoryBonus map[string]int `yaml:"category_bonus"`
}

// DefaultPolicy returns the canonical contextual policy.
func DefaultPolicy() Policy {
	return Policy{
		Mode:         ModeContextual,
		MinPoints:    5,
		MaxPoints:    100,
		EmptyScore:   5,
		BasePerWord:  1.5,
		BaseCap:      25,
		MatchBonus:   10,
		NumericBonus: 5,
		DetailBonuses: []DetailBonus{
			{MinWords: 20, Bonus: 10},
			{MinWords: 10, Bonus: 5},
		},
	}
}

// LegacyPolicy returns the simplified variant, with the original flat
// bonus table mapped onto the catalog categories.
func LegacyPolicy() Policy {
	return Policy{
		Mode:        ModeLegacy,
		MinPoints:   1,
		MaxPoints:   50,
		EmptyScore:  1,
		BasePerWord: 2,
		CategoryBonus: map[string]int{
			"Water":                   7,
			"Energy":                  7,
			"Mobility":                5,
			"Waste":                   5,
			"Food":                    2,
			"Wellbeing":               2,
			"Conscious Consumption":   2,
			"Environmental Education": 2,
			"Green Technology":        2,
		},
	}
}
