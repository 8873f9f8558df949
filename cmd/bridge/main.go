// bridge is a terminal stick-bridge game with replay-verified scores.
//
// Usage:
//
//	bridge play                - Play in the terminal
//	bridge simulate            - Autoplay a run and write its move log
//	bridge verify <run.json>   - Re-score a move log and store the verdict
//	bridge scores [preset]     - Show verified high scores
//	bridge presets             - List difficulty presets
//	bridge serve               - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>   - Custom bridge.yaml
//	--preset <name>   - Difficulty preset (default: normal)
//	--seed <value>    - Layout seed (0 = random based on time)
//	--fps <rate>      - Tick rate (default: 60)
//	--db <path>       - Database path (default: ~/.bridge/scores.db)
//	--verbose         - Debug logging
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bridge-runner/internal/config"
	"github.com/vovakirdan/bridge-runner/internal/registry"
)

var (
	// Global flags
	flagConfig  string
	flagPreset  string
	flagSeed    uint32
	flagFPS     int
	flagDBPath  string
	flagVerbose bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "bridge",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Bridge - grow a stick, cross the gap",
	Long: `Bridge is a one-button terminal game. Hold to grow a stick, release to
drop it across the gap, and land on the next platform. Hitting the red
centre mark is a perfect landing worth extra points.

Every run is recorded as a seed plus a move log, and scores only reach the
leaderboard after the replay validator re-derives them.

Available commands:
  play      - Play in the terminal
  simulate  - Autoplay a run and write its move log
  verify    - Re-score a move log
  scores    - View verified high scores
  presets   - List difficulty presets
  serve     - Start SSH server for remote play

Examples:
  bridge play
  bridge play --preset hard --seed 42
  bridge simulate --seed 7 --rounds 30 -o run.json
  bridge verify run.json
  bridge serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom bridge config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", registry.Default, "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "Layout seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bridge/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadGame reads the config chain and applies the selected preset.
func loadGame() (config.BridgeConfig, error) {
	base, err := config.LoadBridge(flagConfig)
	if err != nil {
		return base, err
	}
	cfg, err := registry.Build(flagPreset, base)
	if err != nil {
		return cfg, err
	}
	logger.Debug("config loaded", "path", flagConfig, "preset", flagPreset)
	return cfg, nil
}

// pickSeed returns the --seed flag, or a clock-derived seed when it is zero.
func pickSeed() uint32 {
	if flagSeed != 0 {
		return flagSeed
	}
	n := uint64(time.Now().UnixNano())
	return uint32(n ^ n>>32)
}
