package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bridge-runner/internal/registry"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List difficulty presets",
	Long:  `Shows the difficulty presets. Each preset keeps its own leaderboard.`,
	Run:   runPresets,
}

func runPresets(_ *cobra.Command, _ []string) {
	presets := registry.List()

	fmt.Println("Difficulty presets:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range presets {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, p := range presets {
		marker := ""
		if p.ID == registry.Default {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %s%s\n", maxIDLen, p.ID, p.Blurb, marker)
	}

	fmt.Println()
	fmt.Println("Run 'bridge play --preset <id>' to play one.")
}
