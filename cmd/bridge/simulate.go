package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bridge-runner/internal/autoplay"
	"github.com/vovakirdan/bridge-runner/internal/bridge"
	"github.com/vovakirdan/bridge-runner/internal/storage"
	"github.com/vovakirdan/bridge-runner/internal/submit"
)

var (
	flagRounds    int
	flagAim       float64
	flagMissEvery int
	flagPowerUps  int
	flagOut       string
	flagSubmit    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Autoplay a run and write its move log",
	Long: `Drive the engine headlessly with a scripted player and write the
resulting seed, move log and score as JSON. The frame rate comes from --fps.

The output can be fed straight back into 'bridge verify'.

Examples:
  bridge simulate --seed 7
  bridge simulate --seed 7 --rounds 100 --aim 12 -o run.json
  bridge simulate --miss-every 5 --power-ups 1 --submit`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRounds, "rounds", 30, "Number of press-release rounds to play")
	simulateCmd.Flags().Float64Var(&flagAim, "aim", 0, "Offset from the target centre to aim at")
	simulateCmd.Flags().IntVar(&flagMissEvery, "miss-every", 0, "Deliberately miss every N rounds (0 = never)")
	simulateCmd.Flags().IntVar(&flagPowerUps, "power-ups", 0, "Power-up revives to spend after the free one")
	simulateCmd.Flags().StringVarP(&flagOut, "out", "o", "-", "Output file (- for stdout)")
	simulateCmd.Flags().BoolVar(&flagSubmit, "submit", false, "Also verify and store the run")
}

func runSimulate(_ *cobra.Command, _ []string) {
	game, err := loadGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}
	player := autoplay.DefaultPlayer()
	player.Aim = flagAim
	player.Dt = 1.0 / float64(fps)
	player.MissEvery = flagMissEvery
	player.PowerUps = flagPowerUps

	seed := pickSeed()
	engine := bridge.New(game)
	if err := engine.Start(&seed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sum, err := player.Play(engine, flagRounds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("simulation finished",
		"seed", seed,
		"rounds", sum.Rounds,
		"score", sum.Score,
		"perfects", sum.Perfects,
		"misses", sum.Misses,
		"revives", sum.Revives+sum.PowerUps,
		"over", sum.Over)

	run := engine.RunData()
	out := runFile{Seed: run.Seed, Moves: run.Moves, Score: sum.Score, Preset: flagPreset}
	if err := writeOutput(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !flagSubmit {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	rc, err := submit.New(game, flagPreset, store, logger).Submit(run, sum.Score)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("run stored", "id", rc.RunID, "verdict", rc.Verdict, "ranked", rc.Ranked)
}

func writeOutput(f runFile) error {
	var w io.Writer = os.Stdout
	if flagOut != "-" {
		file, err := os.Create(flagOut)
		if err != nil {
			return fmt.Errorf("cannot create %s: %w", flagOut, err)
		}
		defer file.Close()
		w = file
	}
	return writeRunFile(w, f)
}
