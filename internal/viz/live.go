package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/beakersim/internal/beaker"
	"github.com/san-kum/beakersim/internal/particle"
)

const (
	canvasWidth     = 64
	canvasHeight    = 22
	historyCapacity = 600
)

type TickMsg time.Time

// Model renders a live beaker in the terminal and steps it once per frame.
type Model struct {
	newBeaker func() *beaker.Beaker
	bk        *beaker.Beaker
	label     string
	fps       int

	canvas   *Canvas
	frames   int
	history  []float64
	running  bool
	showHelp bool
}

// NewModel wraps a beaker factory; the factory runs once up front and again
// on every reset.
func NewModel(newBeaker func() *beaker.Beaker, label string, fps int) Model {
	return Model{
		newBeaker: newBeaker,
		bk:        newBeaker(),
		label:     label,
		fps:       fps,
		canvas:    NewCanvas(canvasWidth, canvasHeight),
		history:   make([]float64, 0, historyCapacity),
		running:   true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input and steps the simulation on each tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.bk = m.newBeaker()
			m.frames = 0
			m.history = m.history[:0]
		case "a":
			m.bk.AddParticles(particle.KindProton, 1)
		case "d":
			m.bk.RemoveParticles(particle.KindProton, 1)
		case "s":
			m.bk.AddParticles(particle.KindStrongBase, 1)
		case "w":
			m.bk.AddParticles(particle.KindWeakBase, 1)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.bk.Step()
			m.frames++
			m.history = append(m.history, float64(m.bk.Stats().BondedPairs))
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// draw renders the solution region and every particle onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()

	sol := m.bk.Solution()
	cw := canvasWidth*2 - 1
	ch := canvasHeight*4 - 1
	scaleX := float64(cw) / sol.Width
	scaleY := float64(ch) / sol.Height

	project := func(x, y float64) (int, int) {
		return int((x - sol.X) * scaleX), int((y - sol.Y) * scaleY)
	}

	m.canvas.DrawRect(0, 0, cw, ch)

	for _, v := range m.bk.Snapshot() {
		px, py := project(v.X, v.Y)
		r := int(v.Radius * scaleY)
		if r < 1 {
			r = 1
		}
		switch {
		case v.Kind == particle.KindProton.String():
			m.canvas.FillCircle(px, py, r)
		default:
			m.canvas.DrawCircle(px, py, r)
		}
	}
}

// View renders the TUI layout: canvas on the left, stats on the right.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	stats := m.bk.Stats()
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.label)) + "\n")
	s.WriteString(status + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("bonded pairs"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	elapsed := float64(m.frames) / float64(m.fps)
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", elapsed)) + "\n")
	s.WriteString(labelStyle.Render("Protons") + valueStyle.Render(fmt.Sprintf("%d", stats.Protons)) + "\n")
	s.WriteString(labelStyle.Render("Free") + valueStyle.Render(fmt.Sprintf("%d", stats.FreeProtons)) + "\n")
	s.WriteString(labelStyle.Render("Bonded") + bondedStyle.Render(fmt.Sprintf("%d", stats.BondedPairs)) + "\n")
	s.WriteString(labelStyle.Render("Strong bases") + valueStyle.Render(fmt.Sprintf("%d", stats.StrongBases)) + "\n")
	s.WriteString(labelStyle.Render("Weak bases") + valueStyle.Render(fmt.Sprintf("%d", stats.WeakBases)) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nA/D:±Proton S:+Strong W:+Weak ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset scenario           ║
║  A        - Add a proton             ║
║  D        - Drain a proton           ║
║  S        - Add a strong base        ║
║  W        - Add a weak base          ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
