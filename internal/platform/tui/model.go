package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-duel/internal/config"
	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/session"
)

// GameOptions configure a GameModel. Zero values pick defaults.
type GameOptions struct {
	Contest    string  // play this one contest; empty plays the campaign
	Difficulty float64 // for Contest
	Campaign   *session.Campaign
	Sink       session.ResultSink
	Factory    session.Factory
	Logger     *log.Logger
	Clock      config.ClockConfig
	Hold       time.Duration
	Now        func() time.Time
	OnFrame    func(d *session.Driver) // called after every driver update
}

// GameModel is the Bubble Tea model that runs a session driver.
type GameModel struct {
	driver   *session.Driver
	screen   *core.Screen
	clock    *session.Clock
	keys     *KeyMapper
	help     help.Model
	now      func() time.Time
	onFrame  func(*session.Driver)
	outcomes *[]session.Outcome

	single     bool
	tickRate   int
	gen        uint64
	standalone bool // Quit instead of going back to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. In single-contest mode the encounter
// begins straight away and an unknown contest is an error.
func NewGameModel(cfg core.RuntimeConfig, opts GameOptions) (GameModel, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	clk := opts.Clock
	if clk.TickRate <= 0 {
		clk = config.Default().Clock
	}

	screen := core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-1))
	outcomes := new([]session.Outcome)
	sink := session.SinkFunc(func(o session.Outcome) error {
		*outcomes = append(*outcomes, o)
		if opts.Sink != nil {
			return opts.Sink.Record(o)
		}
		return nil
	})

	driver := session.NewDriver(session.Options{
		Deps:     contest.Deps{Renderer: core.NewCanvas(screen)},
		Campaign: opts.Campaign,
		Sink:     sink,
		Factory:  opts.Factory,
		Logger:   opts.Logger,
		Seed:     cfg.Seed,
	})

	m := GameModel{
		driver:   driver,
		screen:   screen,
		clock:    session.NewClock(now, clk.MinIntervalMs, clk.MaxIntervalMs),
		keys:     NewKeyMapper(DefaultButtonKeyMap(), opts.Hold),
		help:     help.New(),
		now:      now,
		onFrame:  opts.OnFrame,
		outcomes: outcomes,
		single:   opts.Contest != "",
		tickRate: cfg.TickRate,
		gen:      nextTickGen(),
	}
	if m.tickRate <= 0 {
		m.tickRate = clk.TickRate
	}
	m.help.Width = cfg.ScreenW

	if m.single && !driver.BeginEncounter(opts.Contest, opts.Difficulty) {
		return m, fmt.Errorf("unknown contest %q", opts.Contest)
	}
	return m, nil
}

// Init starts the clock and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.clock.Start()
	return tickCmd(m.tickRate, m.gen)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil
	case tea.BlurMsg:
		m.keys.Release()
		return m, nil
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Quit):
		m.driver.Abort()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Abort):
		m.driver.Abort()
		return m.leave()
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}
	m.keys.Press(msg, m.now())
	return m, nil
}

// handleTick advances the driver by one clamped frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}
	ms := m.clock.Tick()
	m.driver.Update(ms, m.keys.Held(m.now()))
	if m.onFrame != nil {
		m.onFrame(m.driver)
	}
	if m.single && m.driver.Idle() {
		return m.leave()
	}
	return m, tickCmd(m.tickRate, m.gen)
}

func (m GameModel) leave() (tea.Model, tea.Cmd) {
	m.backToMenu = true
	if m.standalone {
		return m, tea.Quit
	}
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.driver.Render()

	dir := filepath.Join(os.Getenv("HOME"), ".duel", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := "campaign"
	if meta, ok := m.driver.Active(); ok {
		name = meta.ID()
	}
	filename := fmt.Sprintf("%s_%s.txt", name, time.Now().Format("20060102_150405"))

	//nolint:errcheck // Best-effort save, the contest continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the driver and a help line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.driver.Render()
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// Driver returns the session driver.
func (m GameModel) Driver() *session.Driver { return m.driver }

// Outcomes returns every encounter finished so far.
func (m GameModel) Outcomes() []session.Outcome { return *m.outcomes }

// ClockStats returns the frame clock's statistics.
func (m GameModel) ClockStats() session.ClockStats { return m.clock.Stats() }

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true once the model is done: the contest was
// abandoned or, in single-contest mode, decided and acknowledged.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// RunResult summarizes a finished Run.
type RunResult struct {
	Outcomes []session.Outcome
	Clock    session.ClockStats
}

// Run plays on the local terminal until the contest is over or the user quits.
func Run(cfg core.RuntimeConfig, opts GameOptions) (RunResult, error) {
	model, err := NewGameModel(cfg, opts)
	if err != nil {
		return RunResult{}, err
	}
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	final, err := p.Run()
	if err != nil {
		return RunResult{}, err
	}
	if gm, ok := final.(GameModel); ok {
		model = gm
	}
	return RunResult{Outcomes: model.Outcomes(), Clock: model.ClockStats()}, nil
}
