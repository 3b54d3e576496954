package score

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/verdeloop/ecoscore/pkg/ecoscore/ingest"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/internalerr"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/lexicon"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/profile"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/vocab"
)

// Engine converts a free-text activity description plus a category tag
// into a bounded point value. Deterministic heuristic, not a ranking
// model: lexicon substring matches, learned-vocabulary bonuses, and
// structural cues (length, digits) summed and scaled.
type Engine struct {
	policy Policy
	lex    *lexicon.Lexicon
	tok    *ingest.Tokenizer
}

// New creates a scoring engine.
func New(policy Policy, lex *lexicon.Lexicon, tok *ingest.Tokenizer) *Engine {
	return &Engine{policy: policy, lex: lex, tok: tok}
}

// Policy returns the engine's scoring policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Breakdown itemizes how a score was assembled. Total is the final
// clamped integer; the components are pre-factor contributions.
type Breakdown struct {
	WordCount int
	Base      float64
	Lexicon   float64
	Learned   float64
	Numeric   float64
	Detail    float64
	Factor    float64
	Total     int
}

// Score returns the point value for a description under category.
// The learner supplies per-profile learned-term weights; nil means no
// learned vocabulary. Fails with ErrUnknownCategory for categories
// outside the catalog.
func (e *Engine) Score(learner *vocab.Learner, category, description string) (int, error) {
	b, err := e.ScoreWithBreakdown(learner, category, description)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

// ScoreWithBreakdown is Score with the full component breakdown.
func (e *Engine) ScoreWithBreakdown(learner *vocab.Learner, category, description string) (Breakdown, error) {
	if !profile.ValidCategory(category) {
		return Breakdown{}, fmt.Errorf("%w: %q", internalerr.ErrUnknownCategory, category)
	}

	if e.policy.Mode == ModeLegacy {
		return e.scoreLegacy(category, description), nil
	}
	return e.scoreContextual(learner, category, description), nil
}

// scoreContextual implements the full context-table/learning pipeline.
// Base and detail bonuses count raw whitespace words; learned-term
// matching runs on normalized tokens.
func (e *Engine) scoreContextual(learner *vocab.Learner, category, description string) Breakdown {
	description = strings.TrimSpace(description)
	if description == "" {
		return Breakdown{Factor: 1.0, Total: e.policy.EmptyScore}
	}

	lower := strings.ToLower(description)
	words := strings.Fields(lower)

	b := Breakdown{WordCount: len(words)}

	b.Base = float64(len(words)) * e.policy.BasePerWord
	if b.Base > e.policy.BaseCap {
		b.Base = e.policy.BaseCap
	}

	// Substring containment, not token-boundary matching. A synonym may
	// match inside a longer word; kept faithful to the observed tables.
	if ctx, ok := e.lex.Context(category); ok {
		for _, concept := range ctx.Concepts {
			for _, syn := range concept.Synonyms {
				if strings.Contains(lower, syn) {
					b.Lexicon += e.policy.MatchBonus * concept.Weight
				}
			}
		}
	}

	if learner != nil {
		seen := make(map[string]struct{})
		for _, tok := range e.tok.Tokenize(lower) {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			b.Learned += e.policy.MatchBonus * learner.WeightOf(category, tok)
		}
	}

	// Any digit class, matching the tokenizer's unicode.IsDigit.
	if strings.IndexFunc(lower, unicode.IsDigit) >= 0 {
		b.Numeric = e.policy.NumericBonus
	}

	for _, tier := range e.policy.DetailBonuses {
		if len(words) > tier.MinWords {
			b.Detail = tier.Bonus
			break
		}
	}

	b.Factor = e.lex.Factor(category)
	total := int((b.Base + b.Lexicon + b.Learned + b.Numeric + b.Detail) * b.Factor)
	b.Total = clamp(total, e.policy.MinPoints, e.policy.MaxPoints)
	return b
}

// scoreLegacy reproduces the simplified variant: points per word plus a
// flat per-category bonus, clamped to the legacy range. No lexicon, no
// learning, no factor.
func (e *Engine) scoreLegacy(category, description string) Breakdown {
	words := strings.Fields(strings.TrimSpace(description))

	b := Breakdown{
		WordCount: len(words),
		Base:      float64(len(words)) * e.policy.BasePerWord,
		Factor:    1.0,
	}
	b.Detail = float64(e.policy.CategoryBonus[category])
	b.Total = clamp(int(b.Base+b.Detail), e.policy.MinPoints, e.policy.MaxPoints)
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
