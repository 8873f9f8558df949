package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bridge-runner/internal/core"
	"github.com/vovakirdan/bridge-runner/internal/storage"
	"github.com/vovakirdan/bridge-runner/internal/submit"
)

// SessionModel is the top-level model for a player: the game, with the
// scoreboard layered over it on request. Local play and SSH sessions both
// run one of these.
type SessionModel struct {
	game     Model
	board    *ScoreboardModel
	store    *storage.Store
	config   core.RuntimeConfig
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(svc *submit.Service, store *storage.Store, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		game:   NewModel(svc, cfg),
		store:  store,
		config: cfg,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.game.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
		if m.board != nil {
			m.updateBoard(msg)
		}
		return m.updateGame(msg)
	}

	// The game keeps ticking underneath the scoreboard so its loop survives
	if _, ok := msg.(TickMsg); ok || m.board == nil {
		return m.updateGame(msg)
	}

	cmd := m.updateBoard(msg)
	switch {
	case m.board.IsQuitting():
		m.game = m.game.Abandon()
		m.quitting = true
		return m, tea.Quit
	case m.board.IsGoingBack():
		m.board = nil
		m.game = m.game.Resume()
	}
	return m, cmd
}

func (m *SessionModel) updateBoard(msg tea.Msg) tea.Cmd {
	next, cmd := m.board.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		m.board = &board
	}
	return cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.WantsScores() && m.board == nil {
		board := NewScoreboardModel(m.store, m.game.submit.Preset(), m.config.ScreenW, m.config.ScreenH)
		board.embedded = true
		m.board = &board
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}
	return m.game.View()
}
