package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-duel/internal/config"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/session"
)

// SessionOptions configure a SessionModel. Zero values pick defaults.
type SessionOptions struct {
	ID      string // key in Live
	Config  config.Config
	Sink    session.ResultSink
	Board   ResultReader // nil hides history
	Live    *session.Live
	Logger  *log.Logger
	Factory session.Factory
}

type sessionMode int

const (
	modeMenu sessionMode = iota
	modeGame
	modeBoard
)

// SessionModel manages a whole visit: menu, contests and the results
// board. The campaign survives trips back to the menu.
type SessionModel struct {
	opts     SessionOptions
	config   core.RuntimeConfig
	campaign *session.Campaign
	mode     sessionMode
	menu     MenuModel
	game     GameModel
	board    ScoreboardModel
	notice   string
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions, cfg core.RuntimeConfig) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	m := SessionModel{
		opts:     opts,
		config:   cfg,
		campaign: session.NewCampaign(opts.Config.Campaign),
	}
	m.menu = NewMenuModel(cfg, m.status())
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.mode {
	case modeGame:
		return m.updateGame(msg)
	case modeBoard:
		return m.updateBoard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.menu.WantsScoreboard():
		m.board = NewScoreboardModel(m.opts.Board, m.config.ScreenW, m.config.ScreenH)
		m.mode = modeBoard
		return m, m.board.Init()
	case m.menu.Selected() != nil:
		return m.startGame(*m.menu.Selected(), m.menu.Preset())
	}
	return m, cmd
}

// startGame leaves the menu for a contest or the campaign.
func (m SessionModel) startGame(item MenuItem, preset config.DifficultyPreset) (tea.Model, tea.Cmd) {
	opts := GameOptions{
		Sink:    m.opts.Sink,
		Factory: m.opts.Factory,
		Logger:  m.opts.Logger,
		Clock:   m.opts.Config.Clock,
		Hold:    time.Duration(m.opts.Config.Input.HoldMs) * time.Millisecond,
	}
	if live, id := m.opts.Live, m.opts.ID; live != nil {
		opts.OnFrame = func(d *session.Driver) { live.Publish(id, d) }
	}

	if item.Campaign() {
		m.campaign.Difficulty().ApplyPreset(preset)
		opts.Campaign = m.campaign
	} else {
		opts.Contest = item.ContestID
		opts.Difficulty = config.InitialLevelForPreset(preset)
		if d, ok := m.opts.Config.ContestDifficulty(item.ContestID); ok {
			opts.Difficulty = d
		}
	}

	game, err := NewGameModel(m.config, opts)
	if err != nil {
		m.opts.Logger.Warn("cannot start contest", "contest", item.ContestID, "error", err)
		m.notice = err.Error()
		return m.backToMenu()
	}
	m.game = game
	m.mode = modeGame
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.game = game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.config.Seed = m.game.Driver().NextSeed()
		m.notice = ""
		if o := m.game.Outcomes(); len(o) > 0 {
			m.notice = describeOutcome(o[len(o)-1])
		}
		return m.backToMenu()
	}
	return m, cmd
}

// updateBoard handles updates when showing the results board.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		m.board = board
	}

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.mode = modeMenu
	m.menu = NewMenuModel(m.config, m.status())
	return m, m.menu.Init()
}

// status summarizes the campaign standing for the menu.
func (m SessionModel) status() string {
	c := m.campaign
	s := fmt.Sprintf("HP %d/%d  GOLD %d  WON %d  LOST %d", c.HP, c.MaxHP, c.Gold, c.Wins, c.Losses)
	if m.notice != "" {
		s = m.notice + "  |  " + s
	}
	return s
}

func describeOutcome(o session.Outcome) string {
	if o.Victory {
		return "won " + o.Contest
	}
	return "lost " + o.Contest
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.mode {
	case modeGame:
		return m.game.View()
	case modeBoard:
		return m.board.View()
	}
	return m.menu.View()
}

// Campaign returns the visit's campaign.
func (m SessionModel) Campaign() *session.Campaign { return m.campaign }

// InGame reports whether a contest or the campaign is on screen.
func (m SessionModel) InGame() bool { return m.mode == modeGame }

// RunSession runs a whole visit on the local terminal.
func RunSession(opts SessionOptions, cfg core.RuntimeConfig) (*session.Campaign, error) {
	model := NewSessionModel(opts, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	if _, err := p.Run(); err != nil {
		return model.Campaign(), err
	}
	return model.Campaign(), nil
}
