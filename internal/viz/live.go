package viz

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbitsim/internal/sim"
)

const historyCapacity = 600

type TickMsg time.Time

// Live drives a started loop from the Bubble Tea event loop, one Step per
// tick. Update runs on a single goroutine so the loop is never shared.
type Live struct {
	loop      *sim.Loop
	renderer  *CanvasRenderer
	fps       int
	maxFrames int
	last      sim.Snapshot
	speeds    []float64
	paused    bool
	done      bool
	err       error
}

// NewLive wraps a loop already in the Running phase whose renderer is r.
// maxFrames <= 0 runs until the operator quits.
func NewLive(loop *sim.Loop, r *CanvasRenderer, fps, maxFrames int) Live {
	if fps <= 0 {
		fps = 60
	}
	return Live{
		loop:      loop,
		renderer:  r,
		fps:       fps,
		maxFrames: maxFrames,
		speeds:    make([]float64, 0, historyCapacity),
	}
}

func (m Live) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Live) Init() tea.Cmd { return m.tick() }

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.loop.Stop()
			m.done = true
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			if m.maxFrames > 0 && m.loop.State().Frame >= m.maxFrames {
				m.loop.Stop()
				m.done = true
				return m, tea.Quit
			}
			snap, err := m.loop.Step()
			if err != nil {
				m.err, m.done = err, true
				return m, tea.Quit
			}
			m.last = snap
			m.speeds = append(m.speeds, snap.Record.Speed)
			if len(m.speeds) > historyCapacity {
				m.speeds = m.speeds[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// Err is the step failure that ended the run, if any.
func (m Live) Err() error { return m.err }

func (m Live) Loop() *sim.Loop { return m.loop }

func (m Live) View() string {
	canvasView := canvasStyle.Render(m.renderer.String())

	var s strings.Builder
	desc := m.loop.Descriptor()
	s.WriteString(headerStyle.Render(strings.ToUpper(desc.Name)) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render("ABORTED") + "\n" + errorStyle.Render(m.err.Error()) + "\n\n")
	case m.paused:
		s.WriteString(pausedStyle.Render("PAUSED") + "\n\n")
	default:
		s.WriteString(runningStyle.Render("RUNNING") + "\n\n")
	}

	if len(m.speeds) > 1 {
		chart := asciigraph.Plot(m.speeds, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Speed (km/s)"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	rec := m.last.Record
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.loop.State().Frame))
	row("Distance", fmt.Sprintf("%.1f km", rec.Distance))
	row("Altitude", fmt.Sprintf("%.1f km", rec.Distance-desc.PlanetRadius))
	row("Speed", fmt.Sprintf("%.3f km/s", rec.Speed))
	row("Position", fmt.Sprintf("(%.0f, %.0f) km", rec.Position.X, rec.Position.Y))
	row("Accel Δ", fmt.Sprintf("%.3g km/s²", rec.AccelChange))
	row("Force", fmt.Sprintf("%.3g N", m.last.Force.Norm()))

	if metrics := m.loop.Metrics(); len(metrics) > 0 {
		s.WriteString("\nRUN\n")
		for _, name := range slices.Sorted(maps.Keys(metrics)) {
			row(name, fmt.Sprintf("%.4g", metrics[name]))
		}
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause  Q:Quit"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// RunLive shows a started loop until it stops. The returned model carries any
// step failure.
func RunLive(loop *sim.Loop, r *CanvasRenderer, fps, maxFrames int, popts ...tea.ProgramOption) (Live, error) {
	final, err := tea.NewProgram(NewLive(loop, r, fps, maxFrames), popts...).Run()
	live, _ := final.(Live)
	return live, err
}
