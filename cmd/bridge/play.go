package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bridge-runner/internal/core"
	"github.com/vovakirdan/bridge-runner/internal/platform/tui"
	"github.com/vovakirdan/bridge-runner/internal/storage"
	"github.com/vovakirdan/bridge-runner/internal/submit"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal.

Terminals report no key release, so the press key toggles: press once to
start growing the stick, press again to drop it.

Controls:
  Space/Enter  - Grow / drop the stick
  V            - Free revive (once per run, after a fall)
  X            - Power-up revive (after a fall)
  P/Esc        - Pause
  R            - New run (gives up a pending revive)
  S/Tab        - Scoreboard
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Examples:
  bridge play
  bridge play --preset easy
  bridge play --seed 42
  bridge play --config ./my-bridge.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	game, err := loadGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		Seed:       flagSeed,
		RandomSeed: flagSeed == 0,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - runs are still verified
		store = nil
	}

	// Bubble Tea owns the terminal, so verification logs go nowhere
	svc := submit.New(game, flagPreset, store, nil)
	runErr := tui.Run(svc, store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
