package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bridge-runner/internal/platform/tui"
	"github.com/vovakirdan/bridge-runner/internal/registry"
	"github.com/vovakirdan/bridge-runner/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagRecent      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [preset]",
	Short: "Show verified high scores",
	Long: `Display the top verified scores for a preset (default: --preset).

Examples:
  bridge scores
  bridge scores hard --limit 20
  bridge scores --recent
  bridge scores -i`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a full-screen table")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List recently submitted runs instead of the leaderboard")
}

func runScores(_ *cobra.Command, args []string) {
	preset := flagPreset
	if len(args) == 1 {
		preset = args[0]
	}
	if !registry.Exists(preset) {
		fmt.Fprintf(os.Stderr, "Error: unknown preset %q\n", preset)
		fmt.Fprintln(os.Stderr, "Run 'bridge presets' to see available presets.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagInteractive:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, preset, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case flagRecent:
		printRecent(store)
	default:
		printTop(store, preset)
	}
}

func printTop(store *storage.Store, preset string) {
	scores, err := store.TopScores(preset, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Verified Scores - %s\n", preset)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'bridge play --preset %s' to set the first high score!\n", preset)
		return
	}

	fmt.Printf("  %-4s  %-6s  %-10s  %s\n", "Rank", "Score", "Seed", "Date")
	fmt.Printf("  %-4s  %-6s  %-10s  %s\n", "----", "-----", "----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-6d  %-10d  %s\n", i+1, entry.Score, entry.Seed, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(preset)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Ranked: %d  Average: %.1f  Rejected runs: %d/%d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.RunsRejected, stats.RunsStored)
	}
}

func printRecent(store *storage.Store) {
	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No runs submitted yet.")
		return
	}

	fmt.Printf("  %-36s  %-7s  %-10s  %-7s  %-8s  %s\n", "Run", "Preset", "Seed", "Claimed", "Replayed", "Verdict")
	for _, r := range runs {
		fmt.Printf("  %-36s  %-7s  %-10d  %-7d  %-8d  %s\n", r.ID, r.Preset, r.Seed, r.Claimed, r.Verified, r.Verdict)
	}
}
