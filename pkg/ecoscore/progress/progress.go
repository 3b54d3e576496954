package progress

// Package progress applies awarded points to a profile and advances
// per-category levels. Per-category level is monotonic state: it only
// increments, and each increment doubles the target. The profile-wide
// level is a coarser tier derived from total score on every call.

import (
	"github.com/verdeloop/ecoscore/pkg/ecoscore/profile"
)

const (
	// GlobalLevelStep is the total-score span of one profile-wide tier.
	GlobalLevelStep = 100
	// MaxGlobalLevel caps the derived profile-wide level.
	MaxGlobalLevel = 100
)

// Apply adds points to the category and the profile total, then walks
// level thresholds. A single large award can cross several targets, so
// the check loops; one LevelUp is emitted per crossing.
func Apply(p *profile.Profile, category string, points int) []profile.LevelUp {
	if points < 0 {
		points = 0
	}

	if p.Categories == nil {
		p.Categories = make(map[string]profile.Category, len(profile.Catalog))
	}
	cat := p.Categories[category]
	if cat.Target <= 0 {
		// An unnormalized record would otherwise loop on target *= 2.
		cat.Target = 100
	}
	if cat.Level < 1 {
		cat.Level = 1
	}
	cat.Points += points
	p.TotalScore += points

	var ups []profile.LevelUp
	for cat.Points >= cat.Target {
		cat.Level++
		cat.Target *= 2
		ups = append(ups, profile.LevelUp{
			Category:  category,
			NewLevel:  cat.Level,
			NewTarget: cat.Target,
		})
	}
	p.Categories[category] = cat

	p.Level = GlobalLevel(p.TotalScore)
	return ups
}

// GlobalLevel derives the profile-wide tier from total score. Idempotent
// against the total, unlike per-category levels.
func GlobalLevel(totalScore int) int {
	level := totalScore/GlobalLevelStep + 1
	if level < 1 {
		level = 1
	}
	if level > MaxGlobalLevel {
		level = MaxGlobalLevel
	}
	return level
}
