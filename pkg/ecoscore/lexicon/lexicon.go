package lexicon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verdeloop/ecoscore/pkg/ecoscore/internalerr"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/profile"
)

// Concept is one canonical idea within a category: a set of synonym
// strings and a weight. Negative weights penalize contra-indicated
// actions (driving a car under Mobility, for instance).
type Concept struct {
	Name     string   `yaml:"name"`
	Synonyms []string `yaml:"synonyms"`
	Weight   float64  `yaml:"weight"`
}

// Context holds a category's concepts and its scalar multiplier factor,
// applied at the end of scoring.
type Context struct {
	Concepts []Concept `yaml:"concepts"`
	Factor   float64   `yaml:"factor"`
}

// Lexicon is the static category → concept table. Immutable at runtime;
// build it once at startup via Default or LoadFromYAML.
type Lexicon struct {
	contexts map[string]Context
}

// Context returns a category's concept table. The second return is false
// for categories outside the catalog.
func (l *Lexicon) Context(category string) (Context, bool) {
	ctx, ok := l.contexts[category]
	return ctx, ok
}

// Factor returns the category's multiplier, or 1.0 if the category has
// no context.
func (l *Lexicon) Factor(category string) float64 {
	if ctx, ok := l.contexts[category]; ok && ctx.Factor > 0 {
		return ctx.Factor
	}
	return 1.0
}

// Categories returns the category names present in the lexicon.
func (l *Lexicon) Categories() []string {
	out := make([]string, 0, len(l.contexts))
	for _, cat := range profile.Catalog {
		if _, ok := l.contexts[cat]; ok {
			out = append(out, cat)
		}
	}
	return out
}

// LoadFromYAML loads a replacement lexicon from a YAML file.
//
// Expected format:
//
//	categories:
//	  - name: Water
//	    factor: 1.2
//	    concepts:
//	      - name: banho
//	        synonyms: [banho, banhar, ducha]
//	        weight: 0.8
//
// Synonyms are lowercased on load. Categories outside the catalog and
// weights outside [-1, 2] are rejected.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Categories []struct {
			Name     string    `yaml:"name"`
			Factor   float64   `yaml:"factor"`
			Concepts []Concept `yaml:"concepts"`
		} `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	contexts := make(map[string]Context, len(doc.Categories))
	for _, cat := range doc.Categories {
		if !profile.ValidCategory(cat.Name) {
			return nil, fmt.Errorf("%w: lexicon category %q not in catalog", internalerr.ErrInvalidConfig, cat.Name)
		}
		if cat.Factor <= 0 {
			return nil, fmt.Errorf("%w: category %q factor must be positive", internalerr.ErrInvalidConfig, cat.Name)
		}
		concepts := make([]Concept, len(cat.Concepts))
		for i, c := range cat.Concepts {
			if c.Weight < -1 || c.Weight > 2 {
				return nil, fmt.Errorf("%w: concept %q weight %.2f out of range", internalerr.ErrInvalidConfig, c.Name, c.Weight)
			}
			syns := make([]string, len(c.Synonyms))
			for j, s := range c.Synonyms {
				syns[j] = strings.ToLower(s)
			}
			concepts[i] = Concept{Name: strings.ToLower(c.Name), Synonyms: syns, Weight: c.Weight}
		}
		contexts[cat.Name] = Context{Concepts: concepts, Factor: cat.Factor}
	}

	return &Lexicon{contexts: contexts}, nil
}
