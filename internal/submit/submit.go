// Package submit re-scores finished runs and persists them. Both the terminal
// host and the CLI hand runs here so a score only reaches the leaderboard
// after the replay validator agrees with it.
package submit

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bridge-runner/internal/bridge"
	"github.com/vovakirdan/bridge-runner/internal/config"
	"github.com/vovakirdan/bridge-runner/internal/replay"
	"github.com/vovakirdan/bridge-runner/internal/storage"
)

// Receipt describes what happened to a submitted run.
type Receipt struct {
	RunID    string // Empty when no store is configured
	Claimed  int
	Verified int
	Verdict  replay.Verdict
	Reason   error // Why the run was rejected, nil otherwise
	Ranked   bool  // A leaderboard entry was written
	Result   replay.Result
}

// Service verifies runs for one config and preset.
type Service struct {
	cfg    config.BridgeConfig
	preset string
	limits replay.Limits
	store  *storage.Store
	logger *log.Logger
}

// New creates a service. A nil store verifies without persisting and a nil
// logger discards output.
func New(cfg config.BridgeConfig, preset string, store *storage.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		cfg:    cfg,
		preset: preset,
		limits: replay.DefaultLimits(cfg),
		store:  store,
		logger: logger,
	}
}

// Preset returns the leaderboard the service ranks scores on.
func (s *Service) Preset() string {
	return s.preset
}

// Config returns the tuning runs are verified against.
func (s *Service) Config() config.BridgeConfig {
	return s.cfg
}

// Submit verifies run against claimed and stores the outcome. Only runs with
// an ok verdict and a positive score are ranked. A rejected run is not an
// error; the error return is reserved for storage failures.
func (s *Service) Submit(run bridge.RunData, claimed int) (Receipt, error) {
	rc := Receipt{Claimed: claimed}

	res, err := replay.Verify(s.cfg, run, s.limits)
	if err != nil {
		rc.Verdict = replay.VerdictRejected
		rc.Reason = err
		s.logger.Warn("run rejected", "seed", run.Seed, "moves", len(run.Moves), "err", err)
	} else {
		rc.Verified = res.Score
		rc.Result = res
		rc.Verdict = res.Verdict(claimed)
		s.logger.Info("run verified",
			"seed", run.Seed,
			"moves", len(run.Moves),
			"claimed", claimed,
			"verified", res.Score,
			"verdict", rc.Verdict)
	}

	if s.store == nil {
		return rc, nil
	}

	id, err := s.store.SaveRun(storage.RunRecord{
		Seed:     run.Seed,
		Moves:    run.Moves,
		Claimed:  claimed,
		Verified: rc.Verified,
		Verdict:  string(rc.Verdict),
		Preset:   s.preset,
	})
	if err != nil {
		return rc, fmt.Errorf("submit: %w", err)
	}
	rc.RunID = id

	if rc.Verdict != replay.VerdictOK || claimed <= 0 {
		return rc, nil
	}
	if _, err := s.store.SaveScore(s.preset, claimed, run.Seed, id); err != nil {
		return rc, fmt.Errorf("submit: %w", err)
	}
	rc.Ranked = true
	return rc, nil
}

// Best returns the top verified score for the preset, zero without a store.
func (s *Service) Best() int {
	if s.store == nil {
		return 0
	}
	best, err := s.store.HighScore(s.preset)
	if err != nil {
		s.logger.Error("high score lookup failed", "err", err)
		return 0
	}
	return best
}

// Accepted reports whether the replay agreed with the claimed score.
func (rc Receipt) Accepted() bool {
	return rc.Verdict == replay.VerdictOK
}
