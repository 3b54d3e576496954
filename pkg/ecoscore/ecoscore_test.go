package ecoscore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/verdeloop/ecoscore/pkg/ecoscore/internalerr"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/profile"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/store"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/store/memstore"
)

func newTestEngine() *Engine {
	return New(Options{Store: memstore.New()})
}

func TestNewZeroOptionsUsesMemstore(t *testing.T) {
	e := New(Options{})
	ctx := context.Background()

	res, err := e.SubmitActivity(ctx, "u1", "Water", "Tomei um banho rápido")
	if err != nil {
		t.Fatalf("SubmitActivity: %v", err)
	}
	p, err := e.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p.TotalScore != res.PointsAwarded {
		t.Errorf("total = %d, want %d", p.TotalScore, res.PointsAwarded)
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestSubmitActivityCreatesProfile(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	res, err := e.SubmitActivity(ctx, "u1", "Water", "Tomei um banho rápido de 5 minutos")
	if err != nil {
		t.Fatalf("SubmitActivity: %v", err)
	}
	if res.PointsAwarded < 5 || res.PointsAwarded > 100 {
		t.Errorf("points = %d, want within [5, 100]", res.PointsAwarded)
	}
	if res.PointsAwarded != res.Breakdown.Total {
		t.Errorf("points %d != breakdown total %d", res.PointsAwarded, res.Breakdown.Total)
	}

	p, err := e.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile after submit: %v", err)
	}
	if p.TotalScore != res.PointsAwarded {
		t.Errorf("total = %d, want %d", p.TotalScore, res.PointsAwarded)
	}
	if p.Categories["Water"].Points != res.PointsAwarded {
		t.Errorf("Water points = %d, want %d", p.Categories["Water"].Points, res.PointsAwarded)
	}
	if len(p.History) != 1 || p.History[0].Description != "Tomei um banho rápido de 5 minutos" {
		t.Errorf("history = %+v, want the submitted record", p.History)
	}
}

func TestSubmitValidation(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.SubmitActivity(ctx, "u1", "Water", "   ")
	if !errors.Is(err, internalerr.ErrEmptyDescription) {
		t.Errorf("blank description: err = %v, want ErrEmptyDescription", err)
	}

	_, err = e.SubmitActivity(ctx, "u1", "Astrology", "li as estrelas")
	if !errors.Is(err, internalerr.ErrUnknownCategory) {
		t.Errorf("unknown category: err = %v, want ErrUnknownCategory", err)
	}

	// Rejected submissions must not create the profile.
	if _, err := e.GetProfile(ctx, "u1"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("GetProfile = %v, want ErrNotFound after rejected submissions", err)
	}
}

func TestSubmitLearnsOwnVocabulary(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	// Two surviving tokens, each at relative frequency 0.5 after this
	// submission's own observation, so each carries weight 0.6.
	res, err := e.SubmitActivity(ctx, "u1", "Waste", "reciclagem de garrafas")
	if err != nil {
		t.Fatalf("SubmitActivity: %v", err)
	}
	if res.Breakdown.Learned != 12 {
		t.Errorf("learned bonus = %.1f, want 12", res.Breakdown.Learned)
	}

	p, _ := e.GetProfile(ctx, "u1")
	terms := p.Vocabulary["Waste"]
	if terms["reciclagem"].Count != 1 || terms["garrafas"].Count != 1 {
		t.Errorf("vocabulary = %+v, want both tokens observed once", terms)
	}
}

func TestRepeatSubmissionsAccumulate(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	const desc = "Fui de bicicleta para o trabalho hoje"
	var first int
	total := 0
	for i := 0; i < 3; i++ {
		res, err := e.SubmitActivity(ctx, "u1", "Mobility", desc)
		if err != nil {
			t.Fatalf("submission %d: %v", i, err)
		}
		if i == 0 {
			first = res.PointsAwarded
		} else if res.PointsAwarded != first {
			// Identical text keeps relative term frequencies constant,
			// so the score must not drift across repeats.
			t.Errorf("submission %d scored %d, first scored %d", i, res.PointsAwarded, first)
		}
		total += res.PointsAwarded
	}

	p, _ := e.GetProfile(ctx, "u1")
	if p.TotalScore != total {
		t.Errorf("total = %d, want %d", p.TotalScore, total)
	}
	if len(p.History) != 3 {
		t.Errorf("history has %d records, want 3", len(p.History))
	}
}

func TestLevelUpOnThreshold(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	const desc = "Tomei um banho rápido de 5 minutos e fechei a torneira enquanto escovava os dentes"
	var ups []profile.LevelUp
	for i := 0; i < 20 && len(ups) == 0; i++ {
		res, err := e.SubmitActivity(ctx, "u1", "Water", desc)
		if err != nil {
			t.Fatalf("submission %d: %v", i, err)
		}
		ups = res.LevelUps
	}
	if len(ups) == 0 {
		t.Fatal("no level-up after 20 submissions")
	}
	if ups[0].Category != "Water" || ups[0].NewLevel != 2 || ups[0].NewTarget != 200 {
		t.Errorf("level-up = %+v, want Water to level 2, target 200", ups[0])
	}

	p, _ := e.GetProfile(ctx, "u1")
	if p.Categories["Water"].Level < 2 {
		t.Errorf("Water level = %d, want at least 2", p.Categories["Water"].Level)
	}
}

// failingStore passes through to the wrapped store until armed, then
// rejects every save.
type failingStore struct {
	store.Store
	fail bool
}

func (f *failingStore) SaveProfile(ctx context.Context, p profile.Profile) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Store.SaveProfile(ctx, p)
}

func TestSaveFailureLeavesProfileUntouched(t *testing.T) {
	fs := &failingStore{Store: memstore.New()}
	e := New(Options{Store: fs})
	ctx := context.Background()

	res, err := e.SubmitActivity(ctx, "u1", "Energy", "Desliguei todas as luzes ao sair")
	if err != nil {
		t.Fatalf("first submission: %v", err)
	}

	fs.fail = true
	_, err = e.SubmitActivity(ctx, "u1", "Energy", "Troquei as lâmpadas por LED")
	if !errors.Is(err, internalerr.ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}

	fs.fail = false
	p, err := e.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p.TotalScore != res.PointsAwarded {
		t.Errorf("total = %d, want pre-failure value %d", p.TotalScore, res.PointsAwarded)
	}
	if len(p.History) != 1 {
		t.Errorf("history has %d records, want 1", len(p.History))
	}
	if len(p.Vocabulary["Energy"]) == 0 {
		t.Error("vocabulary from the successful submission lost")
	}
	for term := range p.Vocabulary["Energy"] {
		if term == "lâmpadas" || term == "troquei" {
			t.Errorf("vocabulary kept term %q from the failed submission", term)
		}
	}
}

func TestPreviewDoesNotMutate(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	if _, err := e.SubmitActivity(ctx, "u1", "Food", "Comida orgânica da feira local"); err != nil {
		t.Fatalf("SubmitActivity: %v", err)
	}
	before, _ := e.GetProfile(ctx, "u1")

	if _, err := e.Preview(ctx, "u1", "Food", "Plantei uma horta no quintal"); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	// Previewing for an unknown user must not create anything either.
	if _, err := e.Preview(ctx, "", "Water", "banho curto"); err != nil {
		t.Fatalf("anonymous Preview: %v", err)
	}

	after, _ := e.GetProfile(ctx, "u1")
	if after.TotalScore != before.TotalScore || len(after.History) != len(before.History) {
		t.Error("Preview mutated the profile")
	}
	if len(after.Vocabulary["Food"]) != len(before.Vocabulary["Food"]) {
		t.Error("Preview grew the vocabulary")
	}
}

func TestHistoryNewestFirstWithLimit(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	descs := []string{
		"Separei o lixo reciclável",
		"Levei as pilhas ao ponto de coleta",
		"Fiz compostagem das cascas",
	}
	for _, d := range descs {
		if _, err := e.SubmitActivity(ctx, "u1", "Waste", d); err != nil {
			t.Fatalf("SubmitActivity(%q): %v", d, err)
		}
	}

	recent, err := e.History(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d records, want 2", len(recent))
	}
	if recent[0].Description != descs[2] || recent[1].Description != descs[1] {
		t.Errorf("order = [%q, %q], want newest first", recent[0].Description, recent[1].Description)
	}

	all, err := e.History(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("History(0): %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d records with no limit, want 3", len(all))
	}
}

func TestHistoryUnknownUser(t *testing.T) {
	e := newTestEngine()
	_, err := e.History(context.Background(), "ghost", 10)
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRankingsOrderAndTies(t *testing.T) {
	ms := memstore.New()
	ctx := context.Background()
	for _, row := range []struct {
		id, name string
		total    int
	}{
		{"u1", "Ana", 40},
		{"u2", "Bruno", 90},
		{"u3", "Carla", 40},
	} {
		p := profile.New(row.id, row.name)
		p.TotalScore = row.total
		if err := ms.SaveProfile(ctx, p); err != nil {
			t.Fatalf("seed %s: %v", row.id, err)
		}
	}
	e := New(Options{Store: ms})

	ranks, err := e.Rankings(ctx)
	if err != nil {
		t.Fatalf("Rankings: %v", err)
	}
	if len(ranks) != 3 {
		t.Fatalf("got %d entries, want 3", len(ranks))
	}
	wantIDs := []string{"u2", "u1", "u3"} // tie between u1/u3 keeps insertion order
	for i, id := range wantIDs {
		if ranks[i].ID != id {
			t.Errorf("ranks[%d].ID = %s, want %s", i, ranks[i].ID, id)
		}
		if ranks[i].Position != i+1 {
			t.Errorf("ranks[%d].Position = %d, want %d", i, ranks[i].Position, i+1)
		}
	}
}

func TestComputeStatsEmptyHistory(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	s := computeStats(nil, now)
	if s.PointsToday != 0 || s.Points7Days != 0 || s.MeanPerActivity != 0 {
		t.Errorf("stats = %+v, want all zero", s)
	}
	if s.TopCategory != "" {
		t.Errorf("TopCategory = %q, want empty", s.TopCategory)
	}
}

func TestComputeStatsSingleActivity(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	history := []profile.ActivityRecord{
		{Category: "Water", Points: 20, Timestamp: now.Add(-2 * time.Hour)},
	}
	s := computeStats(history, now)
	if s.PointsToday != 20 || s.Points7Days != 20 {
		t.Errorf("stats = %+v, want 20 today and over the week", s)
	}
	if s.MeanPerActivity != 20 {
		t.Errorf("mean = %.1f, want 20", s.MeanPerActivity)
	}
	if s.TopCategory != "Water" {
		t.Errorf("TopCategory = %q, want Water", s.TopCategory)
	}
}

func TestComputeStatsWindows(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	history := []profile.ActivityRecord{
		// Same UTC day: counts for today and the week.
		{Category: "Water", Points: 10, Timestamp: time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC)},
		// Yesterday: week only.
		{Category: "Energy", Points: 25, Timestamp: now.AddDate(0, 0, -1)},
		// Exactly seven days ago: still inside the window.
		{Category: "Energy", Points: 7, Timestamp: now.AddDate(0, 0, -7)},
		// Eight days ago: outside the window, still in the totals.
		{Category: "Waste", Points: 40, Timestamp: now.AddDate(0, 0, -8)},
	}
	s := computeStats(history, now)

	if s.PointsToday != 10 {
		t.Errorf("PointsToday = %d, want 10", s.PointsToday)
	}
	if s.Points7Days != 42 {
		t.Errorf("Points7Days = %d, want 42", s.Points7Days)
	}
	if s.MeanPerActivity != 20.5 {
		t.Errorf("mean = %.2f, want 20.5 over all four activities", s.MeanPerActivity)
	}
	// Waste leads the all-time per-category totals despite being
	// outside the weekly window.
	if s.TopCategory != "Waste" {
		t.Errorf("TopCategory = %q, want Waste", s.TopCategory)
	}
}

func TestComputeStatsTopCategoryTie(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	history := []profile.ActivityRecord{
		{Category: "Mobility", Points: 30, Timestamp: now},
		{Category: "Energy", Points: 30, Timestamp: now},
	}
	// Ties break by catalog order; Energy precedes Mobility.
	if s := computeStats(history, now); s.TopCategory != "Energy" {
		t.Errorf("TopCategory = %q, want Energy", s.TopCategory)
	}
}

func TestUserStats(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	if _, err := e.UserStats(ctx, "ghost"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("unknown user: err = %v, want ErrNotFound", err)
	}

	res, err := e.SubmitActivity(ctx, "u1", "Water", "Tomei um banho rápido de 5 minutos")
	if err != nil {
		t.Fatalf("SubmitActivity: %v", err)
	}

	s, err := e.UserStats(ctx, "u1")
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	if s.PointsToday != res.PointsAwarded || s.Points7Days != res.PointsAwarded {
		t.Errorf("stats = %+v, want %d today and over the week", s, res.PointsAwarded)
	}
	if s.MeanPerActivity != float64(res.PointsAwarded) {
		t.Errorf("mean = %.1f, want %d", s.MeanPerActivity, res.PointsAwarded)
	}
	if s.TopCategory != "Water" {
		t.Errorf("TopCategory = %q, want Water", s.TopCategory)
	}
}

func TestCreateProfile(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	p, err := e.CreateProfile(ctx, "Ana")
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if p.ID == "" || p.Name != "Ana" {
		t.Errorf("profile = %+v, want generated ID and name Ana", p)
	}

	got, found, err := e.FindProfileByName(ctx, "Ana")
	if err != nil || !found {
		t.Fatalf("FindProfileByName = found %v, err %v", found, err)
	}
	if got.ID != p.ID {
		t.Errorf("found ID %s, want %s", got.ID, p.ID)
	}

	if _, err := e.CreateProfile(ctx, "   "); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("blank name: err = %v, want ErrInvalidInput", err)
	}
}
