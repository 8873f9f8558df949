package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vovakirdan/bridge-runner/internal/bridge"
)

// runFile is the on-disk form of a submitted run: the move log plus the
// score the client claims for it.
type runFile struct {
	Seed   uint32        `json:"seed"`
	Moves  []bridge.Move `json:"moves"`
	Score  int           `json:"score"`
	Preset string        `json:"preset,omitempty"`
}

func (f runFile) runData() bridge.RunData {
	moves := f.Moves
	if moves == nil {
		moves = []bridge.Move{}
	}
	return bridge.RunData{Seed: f.Seed, Moves: moves}
}

func writeRunFile(w io.Writer, f runFile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("cannot encode run: %w", err)
	}
	return nil
}

func readRunFile(path string) (runFile, error) {
	var f runFile

	var r io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return f, fmt.Errorf("cannot open run %s: %w", path, err)
		}
		defer file.Close()
		r = file
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return f, fmt.Errorf("cannot parse run %s: %w", path, err)
	}
	return f, nil
}
