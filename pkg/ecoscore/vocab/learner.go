package vocab

import (
	"math"

	"github.com/verdeloop/ecoscore/pkg/ecoscore/profile"
)

// MaxWeight is the ceiling of a learned term's weight: a term used for
// 100% of a category's observations scores relativeFrequency * 1.2.
const MaxWeight = 1.2

// InitialWeight is assigned to a term on first sight, before the next
// renormalization overwrites it.
const InitialWeight = 0.5

// Learner maintains per-category learned-term maps inside a profile's
// vocabulary. Weights are category-local relative-frequency estimates:
// fully recomputed on every observation, so a term's weight rises both
// when it repeats and when rival terms are diluted.
type Learner struct {
	terms map[string]map[string]profile.LearnedTerm
}

// NewLearner wraps a profile's vocabulary map. The map is mutated in
// place; the profile remains the owner.
func NewLearner(terms map[string]map[string]profile.LearnedTerm) *Learner {
	return &Learner{terms: terms}
}

// Observe increments usage counts for the given tokens under category,
// inserting unseen terms, then renormalizes every weight in the category.
// No qualifying tokens is a no-op.
func (l *Learner) Observe(category string, tokens []string) {
	if len(tokens) == 0 {
		return
	}

	cat, ok := l.terms[category]
	if !ok {
		cat = make(map[string]profile.LearnedTerm, len(tokens))
		l.terms[category] = cat
	}

	for _, tok := range tokens {
		if info, ok := cat[tok]; ok {
			info.Count++
			cat[tok] = info
		} else {
			cat[tok] = profile.LearnedTerm{Count: 1, Weight: InitialWeight}
		}
	}

	total := 0
	for _, info := range cat {
		total += info.Count
	}
	if total == 0 {
		return
	}
	for tok, info := range cat {
		freq := float64(info.Count) / float64(total)
		info.Weight = round3(freq * MaxWeight)
		cat[tok] = info
	}
}

// WeightOf returns the learned weight of token under category, or 0 if
// the term is unknown.
func (l *Learner) WeightOf(category, token string) float64 {
	if cat, ok := l.terms[category]; ok {
		if info, ok := cat[token]; ok {
			return info.Weight
		}
	}
	return 0
}

// Terms returns the learned-term map for a category. Nil if nothing has
// been observed yet.
func (l *Learner) Terms(category string) map[string]profile.LearnedTerm {
	return l.terms[category]
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
