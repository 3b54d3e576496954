package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/verdeloop/ecoscore/pkg/ecoscore"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/profile"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/store/sqlite"
)

func main() {
	var (
		dbPath      = flag.String("db", "ecoscore.db", "SQLite database path")
		userName    = flag.String("user", "", "User name (created on first use)")
		category    = flag.String("category", "", "Activity category")
		description = flag.String("describe", "", "Activity description")
		ranking     = flag.Bool("ranking", false, "Print the leaderboard and exit")
		history     = flag.Int("history", 0, "Print the last N activities and exit")
		stats       = flag.Bool("stats", false, "Print activity statistics and exit")
	)
	flag.Parse()

	ctx := context.Background()

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	engine := ecoscore.New(ecoscore.Options{Store: st})
	defer engine.Close()

	if *ranking {
		printRanking(ctx, engine)
		return
	}

	if *userName == "" {
		log.Fatal("--user required")
	}

	p, found, err := engine.FindProfileByName(ctx, *userName)
	if err != nil {
		log.Fatal("Failed to look up user:", err)
	}
	if !found {
		p, err = engine.CreateProfile(ctx, *userName)
		if err != nil {
			log.Fatal("Failed to create user:", err)
		}
		log.Printf("Created profile for %s (%s)", p.Name, p.ID)
	}

	if *history > 0 {
		printHistory(ctx, engine, p.ID, *history)
		return
	}
	if *stats {
		printStats(ctx, engine, p.ID)
		return
	}

	if *category == "" || *description == "" {
		log.Fatal("--category and --describe required (or use --ranking / --history / --stats)")
	}
	if !profile.ValidCategory(*category) {
		log.Fatalf("Unknown category %q. Valid categories: %s", *category, strings.Join(profile.Catalog, ", "))
	}

	result, err := engine.SubmitActivity(ctx, p.ID, *category, *description)
	if err != nil {
		log.Fatal("Failed to submit activity:", err)
	}

	fmt.Printf("+%d points in %s\n", result.PointsAwarded, *category)
	for _, up := range result.LevelUps {
		fmt.Printf("Level up! %s is now level %d (next target: %d points)\n",
			up.Category, up.NewLevel, up.NewTarget)
	}

	fmt.Printf("\nTotal score: %d (level %d)\n", result.Profile.TotalScore, result.Profile.Level)
	fmt.Println("Progress:")
	for _, name := range profile.Catalog {
		cat := result.Profile.Categories[name]
		fmt.Printf("  %-24s %5d/%-6d (%.1f%%)  level %d\n",
			name, cat.Points, cat.Target, cat.Progress(), cat.Level)
	}
}

func printRanking(ctx context.Context, engine *ecoscore.Engine) {
	entries, err := engine.Rankings(ctx)
	if err != nil {
		log.Fatal("Failed to load ranking:", err)
	}
	if len(entries) == 0 {
		fmt.Println("No profiles yet.")
		return
	}
	fmt.Printf("%-4s %-20s %10s %7s\n", "#", "Name", "Score", "Level")
	for _, e := range entries {
		fmt.Printf("%-4d %-20s %10d %7d\n", e.Position, e.Name, e.TotalScore, e.Level)
	}
}

func printStats(ctx context.Context, engine *ecoscore.Engine, userID string) {
	s, err := engine.UserStats(ctx, userID)
	if err != nil {
		log.Fatal("Failed to load statistics:", err)
	}
	fmt.Printf("Points today:        %d\n", s.PointsToday)
	fmt.Printf("Points last 7 days:  %d\n", s.Points7Days)
	fmt.Printf("Mean per activity:   %.1f\n", s.MeanPerActivity)
	top := s.TopCategory
	if top == "" {
		top = "-"
	}
	fmt.Printf("Top category:        %s\n", top)
}

func printHistory(ctx context.Context, engine *ecoscore.Engine, userID string, limit int) {
	records, err := engine.History(ctx, userID, limit)
	if err != nil {
		log.Fatal("Failed to load history:", err)
	}
	if len(records) == 0 {
		fmt.Println("No activities yet.")
		os.Exit(0)
	}
	for _, rec := range records {
		fmt.Printf("%s  %-24s +%-4d  %s\n",
			rec.Timestamp.Local().Format("02/01/2006 15:04"),
			rec.Category, rec.Points, rec.Description)
	}
}
