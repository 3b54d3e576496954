package ecoscore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/verdeloop/ecoscore/pkg/ecoscore/ingest"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/internalerr"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/lexicon"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/profile"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/progress"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/score"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/store"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/store/memstore"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/vocab"
)

// Engine is the activity-scoring service facade. Every front end (HTTP
// API, CLI) is a thin adapter over these methods, so the scoring and
// progression semantics exist in exactly one place.
type Engine struct {
	store  store.Store
	scorer *score.Engine
	tok    *ingest.Tokenizer

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Options configures an Engine instance. Zero values select the built-in
// lexicon, default stopwords, the canonical scoring policy, and an
// in-memory store.
type Options struct {
	Store     store.Store
	Lexicon   *lexicon.Lexicon
	Policy    *score.Policy
	Stopwords []string
}

// New creates an Engine with the given dependencies.
func New(opts Options) *Engine {
	st := opts.Store
	if st == nil {
		st = memstore.New()
	}
	lex := opts.Lexicon
	if lex == nil {
		lex = lexicon.Default()
	}
	policy := score.DefaultPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}
	stops := opts.Stopwords
	if stops == nil {
		stops = ingest.DefaultStopwords()
	}
	tok := ingest.NewTokenizer(stops)

	return &Engine{
		store:  st,
		scorer: score.New(policy, lex, tok),
		tok:    tok,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Close cleanly shuts down the engine.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Result is the outcome of one accepted activity submission.
type Result struct {
	PointsAwarded int                    `json:"points_awarded"`
	Breakdown     score.Breakdown        `json:"breakdown"`
	LevelUps      []profile.LevelUp      `json:"level_ups"`
	Profile       profile.Profile        `json:"profile"`
	Record        profile.ActivityRecord `json:"record"`
}

// SubmitActivity runs the whole pipeline for one submission: tokenize,
// learn, score, progress, append history, persist. The pipeline operates
// on a working copy of the profile; nothing is published until the save
// succeeds, so a persistence failure leaves caller-visible state at its
// pre-submission values.
func (e *Engine) SubmitActivity(ctx context.Context, userID, category, description string) (Result, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Result{}, internalerr.ErrEmptyDescription
	}
	if !profile.ValidCategory(category) {
		return Result{}, fmt.Errorf("%w: %q", internalerr.ErrUnknownCategory, category)
	}

	unlock := e.lockUser(userID)
	defer unlock()

	// A missing record yields a skeleton: profiles are created on first
	// use and only ever destroyed with their user.
	p, _, err := e.store.LoadProfile(ctx, userID)
	if err != nil {
		return Result{}, err
	}

	tokens := e.tok.Tokenize(description)

	// Learn before scoring, so this submission's own vocabulary already
	// counts toward its score.
	learner := vocab.NewLearner(p.Vocabulary)
	learner.Observe(category, tokens)

	breakdown, err := e.scorer.ScoreWithBreakdown(learner, category, description)
	if err != nil {
		return Result{}, err
	}

	ups := progress.Apply(&p, category, breakdown.Total)

	rec := profile.ActivityRecord{
		ID:          profile.NewID(),
		Timestamp:   time.Now().UTC(),
		Category:    category,
		Description: description,
		Points:      breakdown.Total,
	}
	p.History = append(p.History, rec)

	if err := e.store.SaveProfile(ctx, p); err != nil {
		return Result{}, fmt.Errorf("%w: %v", internalerr.ErrPersistence, err)
	}

	return Result{
		PointsAwarded: breakdown.Total,
		Breakdown:     breakdown,
		LevelUps:      ups,
		Profile:       p,
		Record:        rec,
	}, nil
}

// Preview scores a description without learning from it or mutating the
// profile. An empty userID previews against an empty vocabulary.
func (e *Engine) Preview(ctx context.Context, userID, category, description string) (score.Breakdown, error) {
	var learner *vocab.Learner
	if userID != "" {
		p, _, err := e.store.LoadProfile(ctx, userID)
		if err != nil {
			return score.Breakdown{}, err
		}
		learner = vocab.NewLearner(p.Vocabulary)
	}
	return e.scorer.ScoreWithBreakdown(learner, category, description)
}

// CreateProfile registers a new named profile and persists its skeleton.
func (e *Engine) CreateProfile(ctx context.Context, name string) (profile.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return profile.Profile{}, fmt.Errorf("%w: profile name required", internalerr.ErrInvalidInput)
	}
	p := profile.New(profile.NewID(), name)
	if err := e.store.SaveProfile(ctx, p); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %v", internalerr.ErrPersistence, err)
	}
	return p, nil
}

// GetProfile returns the stored profile for userID, or ErrNotFound.
func (e *Engine) GetProfile(ctx context.Context, userID string) (profile.Profile, error) {
	p, found, err := e.store.LoadProfile(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}
	if !found {
		return profile.Profile{}, fmt.Errorf("%w: profile %s", internalerr.ErrNotFound, userID)
	}
	return p, nil
}

// FindProfileByName returns the first profile with the given name.
func (e *Engine) FindProfileByName(ctx context.Context, name string) (profile.Profile, bool, error) {
	return e.store.FindByName(ctx, name)
}

// History returns the most recent activity records, newest first.
// limit <= 0 returns everything.
func (e *Engine) History(ctx context.Context, userID string, limit int) ([]profile.ActivityRecord, error) {
	p, err := e.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]profile.ActivityRecord, len(p.History))
	for i, rec := range p.History {
		out[len(p.History)-1-i] = rec
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Stats summarizes one user's recent activity: points earned today and
// over the trailing seven days, the average per activity, and the
// category that has accumulated the most points overall.
type Stats struct {
	PointsToday     int     `json:"points_today"`
	Points7Days     int     `json:"points_7_days"`
	MeanPerActivity float64 `json:"mean_per_activity"`
	TopCategory     string  `json:"top_category"`
}

// UserStats computes activity statistics for userID from its history.
// ErrNotFound for unknown users.
func (e *Engine) UserStats(ctx context.Context, userID string) (Stats, error) {
	p, err := e.GetProfile(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return computeStats(p.History, time.Now().UTC()), nil
}

// computeStats walks the history once. Day boundaries and the trailing
// window are evaluated in UTC, the zone activity timestamps are stored
// in. TopCategory ties break by catalog order.
func computeStats(history []profile.ActivityRecord, now time.Time) Stats {
	var s Stats
	if len(history) == 0 {
		return s
	}

	weekAgo := now.AddDate(0, 0, -7)
	year, month, day := now.Date()

	total := 0
	perCategory := make(map[string]int)
	for _, rec := range history {
		total += rec.Points
		perCategory[rec.Category] += rec.Points

		ts := rec.Timestamp.UTC()
		ry, rm, rd := ts.Date()
		if ry == year && rm == month && rd == day {
			s.PointsToday += rec.Points
		}
		if !ts.Before(weekAgo) && !ts.After(now) {
			s.Points7Days += rec.Points
		}
	}
	s.MeanPerActivity = float64(total) / float64(len(history))

	best := 0
	for _, cat := range profile.Catalog {
		if pts, ok := perCategory[cat]; ok && pts > best {
			best = pts
			s.TopCategory = cat
		}
	}
	return s
}

// RankEntry is one leaderboard row.
type RankEntry struct {
	Position   int    `json:"position"`
	ID         string `json:"id"`
	Name       string `json:"name"`
	TotalScore int    `json:"total_score"`
	Level      int    `json:"level"`
}

// Rankings returns all profiles ordered by total score descending. Ties
// keep insertion order (stable sort).
func (e *Engine) Rankings(ctx context.Context) ([]RankEntry, error) {
	profiles, err := e.store.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].TotalScore > profiles[j].TotalScore
	})

	out := make([]RankEntry, len(profiles))
	for i, p := range profiles {
		out[i] = RankEntry{
			Position:   i + 1,
			ID:         p.ID,
			Name:       p.Name,
			TotalScore: p.TotalScore,
			Level:      p.Level,
		}
	}
	return out, nil
}

// lockUser serializes the read-modify-write cycle for one profile.
func (e *Engine) lockUser(userID string) func() {
	e.mu.Lock()
	lock, ok := e.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[userID] = lock
	}
	e.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
