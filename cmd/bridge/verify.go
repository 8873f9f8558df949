package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bridge-runner/internal/replay"
	"github.com/vovakirdan/bridge-runner/internal/storage"
	"github.com/vovakirdan/bridge-runner/internal/submit"
)

var (
	flagClaimed    int
	flagNoStore    bool
	flagShowMoves  bool
	flagClaimedSet bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify <run.json>",
	Short: "Re-score a move log",
	Long: `Sanitize and replay a run file, compare the replayed score with the
claimed one and store the verdict. Matching runs are ranked on the
preset's leaderboard. Use - to read the run from stdin.

The claimed score is taken from the file unless --claimed is given.
Exits with status 1 when the verdict is not ok.

Examples:
  bridge verify run.json
  bridge verify run.json --claimed 42
  bridge simulate --seed 9 | bridge verify - --no-store`,
	Args: cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, _ []string) {
		flagClaimedSet = cmd.Flags().Changed("claimed")
	},
	Run: runVerify,
}

func init() {
	verifyCmd.Flags().IntVar(&flagClaimed, "claimed", 0, "Claimed score (defaults to the file's score)")
	verifyCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "Verify only, do not store the run")
	verifyCmd.Flags().BoolVar(&flagShowMoves, "moves", false, "Print the per-move outcomes")
}

func runVerify(_ *cobra.Command, args []string) {
	if code := verifyRun(args[0]); code != 0 {
		os.Exit(code)
	}
}

// verifyRun submits the run at path and returns the process exit code.
// The store is closed before the caller exits.
func verifyRun(path string) int {
	game, err := loadGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	file, err := readRunFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if file.Preset != "" && file.Preset != flagPreset {
		logger.Warn("run was recorded under another preset", "run", file.Preset, "verifying", flagPreset)
	}

	claimed := file.Score
	if flagClaimedSet {
		claimed = flagClaimed
	}

	var store *storage.Store
	if !flagNoStore {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
			return 1
		}
		defer store.Close()
	}

	rc, err := submit.New(game, flagPreset, store, logger).Submit(file.runData(), claimed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	printReceipt(rc)
	if !rc.Accepted() {
		return 1
	}
	return 0
}

func printReceipt(rc submit.Receipt) {
	fmt.Printf("Verdict:  %s\n", rc.Verdict)
	if rc.Reason != nil {
		var moveErr *replay.MoveError
		if errors.As(rc.Reason, &moveErr) {
			fmt.Printf("Reason:   move %d: %v\n", moveErr.Index, moveErr.Err)
		} else {
			fmt.Printf("Reason:   %v\n", rc.Reason)
		}
		return
	}

	res := rc.Result
	fmt.Printf("Claimed:  %d\n", rc.Claimed)
	fmt.Printf("Replayed: %d (%d hits, %d perfect, %d misses, best streak %d)\n",
		res.Score, res.Hits, res.Perfects, res.Misses, res.BestStreak)
	if res.DebugMismatches > 0 {
		fmt.Printf("Debug:    %d moves disagree with their recorded snapshot\n", res.DebugMismatches)
	}
	if rc.RunID != "" {
		fmt.Printf("Run ID:   %s\n", rc.RunID)
	}
	if rc.Ranked {
		fmt.Println("Ranked on the leaderboard.")
	}

	if !flagShowMoves {
		return
	}
	fmt.Println()
	fmt.Printf("  %-4s  %-9s  %-9s  %s\n", "Move", "Tip", "Platform", "Result")
	fmt.Printf("  %-4s  %-9s  %-9s  %s\n", "----", "---", "--------", "------")
	for _, o := range res.Outcomes {
		result := "miss"
		switch {
		case o.Perfect:
			result = fmt.Sprintf("perfect +%d", o.Points)
		case o.Hit:
			result = fmt.Sprintf("hit +%d", o.Points)
		}
		if o.DebugMismatch {
			result += " (debug mismatch)"
		}
		fmt.Printf("  %-4d  %-9.2f  %-9.2f  %s\n", o.Index, o.Tip, o.PlatformX, result)
	}
}
