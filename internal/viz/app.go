package viz

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/scenario"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	stateMenu = iota
	stateForm
	stateSim
)

// Launcher builds a loop that renders through r and starts it on sc.
type Launcher func(sc config.ScenarioConfig, r sim.Renderer) (*sim.Loop, error)

type menuItem struct {
	key, label, preset string
}

var menuItems = []menuItem{
	{"1", "Earth", "earth"},
	{"2", "Test Spacecraft", "test_spacecraft"},
	{"3", "Custom Input", ""},
}

// App is the interactive entry point: pick a scenario, then watch it run.
type App struct {
	state     int
	cursor    int
	field     int
	buf       string
	values    map[string]float64
	notice    string
	launch    Launcher
	cols      int
	rows      int
	surfaceW  int
	surfaceH  int
	fps       int
	maxFrames int
	live      Live
	started   bool
}

// AppOptions sizes the canvas and the simulated surface.
type AppOptions struct {
	Cols, Rows         int
	SurfaceW, SurfaceH int
	FPS, MaxFrames     int
}

func NewApp(launch Launcher, opts AppOptions) App {
	if opts.Cols <= 0 {
		opts.Cols = 80
	}
	if opts.Rows <= 0 {
		opts.Rows = 24
	}
	return App{
		state:     stateMenu,
		launch:    launch,
		values:    make(map[string]float64),
		cols:      opts.Cols,
		rows:      opts.Rows,
		surfaceW:  opts.SurfaceW,
		surfaceH:  opts.SurfaceH,
		fps:       opts.FPS,
		maxFrames: opts.MaxFrames,
	}
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Live)
		return m, cmd
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(msg)
		case stateForm:
			return m.formKey(msg)
		}
	}
	return m, nil
}

func (m App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.choose(menuItems[m.cursor])
	default:
		for i, item := range menuItems {
			if msg.String() == item.key {
				m.cursor = i
				return m.choose(item)
			}
		}
		m.notice = "Invalid choice. Please enter 1, 2, 3, or 'quit'."
	}
	return m, nil
}

func (m App) choose(item menuItem) (App, tea.Cmd) {
	m.notice = ""
	if item.preset == "" {
		m.state, m.field, m.buf = stateForm, 0, ""
		m.values = make(map[string]float64)
		return m, nil
	}
	return m.start(*config.GetPreset(item.preset))
}

func (m App) formKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state, m.notice = stateMenu, ""
	case "backspace":
		if len(m.buf) > 0 {
			m.buf = m.buf[:len(m.buf)-1]
		}
	case "enter":
		f := scenario.Fields[m.field]
		v, err := scenario.ParseField(f, m.buf)
		m.buf = ""
		if err != nil {
			var ve *scenario.ValidationError
			if errors.As(err, &ve) {
				m.notice = ve.Reason
			} else {
				m.notice = err.Error()
			}
			return m, nil
		}
		m.notice = ""
		m.values[f.Key] = v
		m.field++
		if m.field == len(scenario.Fields) {
			return m.start(scenario.FromValues("Custom", m.values))
		}
	default:
		if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-+eE") {
			m.buf += s
		}
	}
	return m, nil
}

func (m App) start(sc config.ScenarioConfig) (App, tea.Cmd) {
	r := NewCanvasRenderer(m.cols, m.rows, m.surfaceW, m.surfaceH)
	loop, err := m.launch(sc, r)
	if err != nil {
		m.state, m.notice = stateMenu, err.Error()
		return m, nil
	}
	m.live = NewLive(loop, r, m.fps, m.maxFrames)
	m.state, m.started = stateSim, true
	return m, m.live.Init()
}

// Started reports whether a scenario was launched before the program quit.
func (m App) Started() bool { return m.started }

func (m App) Live() Live { return m.live }

func (m App) View() string {
	switch m.state {
	case stateForm:
		return m.viewForm()
	case stateSim:
		return m.live.View()
	}
	return m.viewMenu()
}

func (m App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("ORBITSIM") + "\n    " + subStyle.Render("Select a Test Configuration") + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, item := range menuItems {
		label := fmt.Sprintf("%s - %s", item.key, item.label)
		if i == m.cursor {
			b.WriteString("    " + cursorStyle.Render("▸") + " " + activeStyle.Render(label) + "\n")
		} else {
			b.WriteString("      " + itemStyle.Render(label) + "\n")
		}
	}
	if m.notice != "" {
		b.WriteString("\n    " + errorStyle.Render(m.notice) + "\n")
	}
	b.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m App) viewForm() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("CUSTOM INPUT") + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, f := range scenario.Fields {
		switch {
		case i < m.field:
			b.WriteString(fmt.Sprintf("      %s %s\n", itemStyle.Render(fmt.Sprintf("%-22s", f.Label)), valueStyle.Render(fmt.Sprintf("%g", m.values[f.Key]))))
		case i == m.field:
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorStyle.Render("▸"), activeStyle.Render(fmt.Sprintf("%-22s", f.Label)), inputStyle.Render(m.buf+"_")))
		default:
			b.WriteString("      " + itemStyle.Render(f.Label) + "\n")
		}
	}
	if m.notice != "" {
		b.WriteString("\n    " + errorStyle.Render(m.notice) + "\n")
	}
	b.WriteString("\n    " + keyHints("enter", "confirm", "esc", "back") + "\n")
	return b.String()
}

// Run shows the menu and blocks until the program exits. The final model is
// returned even when the program was killed, so callers can inspect the run.
func Run(launch Launcher, opts AppOptions, popts ...tea.ProgramOption) (App, error) {
	final, err := tea.NewProgram(NewApp(launch, opts), popts...).Run()
	app, _ := final.(App)
	return app, err
}
