package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bubblesort/internal/clock"
	"github.com/san-kum/bubblesort/internal/playback"
	"github.com/san-kum/bubblesort/internal/sorting"
)

const barRows = 12

// fireMsg carries a scheduler callback onto the update goroutine.
type fireMsg func()

// Model is the interactive session. The controller it wraps is only touched
// from Update, which bubbletea runs on a single goroutine.
type Model struct {
	ctrl    *playback.Controller
	tracker *tracker
	keys    keyMap
	help    help.Model
	theme   Theme
	styles  styles
	notice  string
	explain bool
	width   int
	height  int
}

// NewModel builds a model whose controller schedules on sched. opts are
// passed through to playback.New.
func NewModel(sched clock.Scheduler, theme string, opts ...playback.Option) (Model, error) {
	tr := newTracker()
	opts = append(opts, playback.WithListener(tr))
	ctrl, err := playback.New(sched, opts...)
	if err != nil {
		return Model{}, err
	}
	t := GetTheme(theme)
	return Model{
		ctrl:    ctrl,
		tracker: tr,
		keys:    defaultKeyMap(),
		help:    help.New(),
		theme:   t,
		styles:  newStyles(t),
		width:   80,
		height:  24,
	}, nil
}

// Run starts an interactive session on the terminal and blocks until the
// user quits.
func Run(theme string, opts ...playback.Option) error {
	var p *tea.Program
	sched := clock.NewPosted(func(f func()) { p.Send(fireMsg(f)) })
	m, err := NewModel(sched, theme, opts...)
	if err != nil {
		return err
	}
	p = tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	m.ctrl.Close()
	return err
}

func (m Model) Controller() *playback.Controller { return m.ctrl }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fireMsg:
		msg()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	c := m.ctrl
	switch {
	case key.Matches(msg, m.keys.Quit):
		c.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		if c.State() == playback.Sorted {
			m.notice = "already sorted: r to replay, n for a new array"
			break
		}
		c.Toggle()
	case key.Matches(msg, m.keys.New):
		if c.State() == playback.Sorting {
			m.notice = "pause before generating a new array"
			break
		}
		c.GenerateNewArray()
	case key.Matches(msg, m.keys.Reset):
		c.Reset()
	case key.Matches(msg, m.keys.Smaller):
		m.setSize(c.ArraySize() - 1)
	case key.Matches(msg, m.keys.Larger):
		m.setSize(c.ArraySize() + 1)
	case key.Matches(msg, m.keys.Slower):
		m.setSpeed(c.Speed() - 1)
	case key.Matches(msg, m.keys.Faster):
		m.setSpeed(c.Speed() + 1)
	case key.Matches(msg, m.keys.Theme):
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
	case key.Matches(msg, m.keys.Explain):
		m.explain = !m.explain
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) setSize(n int) {
	if m.ctrl.SetArraySize(n) {
		return
	}
	if m.ctrl.State() == playback.Sorting {
		m.notice = "pause before resizing"
		return
	}
	m.notice = fmt.Sprintf("size must be %d-%d", playback.MinArraySize, playback.MaxArraySize)
}

func (m *Model) setSpeed(s int) {
	if m.ctrl.SetSpeed(s) {
		return
	}
	if m.ctrl.State() == playback.Sorting {
		m.notice = "pause before changing speed"
		return
	}
	m.notice = fmt.Sprintf("speed must be %d-%d", playback.MinSpeed, playback.MaxSpeed)
}

func (m Model) View() string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Header.Render("BUBBLE SORT"),
		m.styles.Panel.Render(m.renderBars()),
		m.styles.Panel.Render(m.renderCode()),
	)
	right := m.renderStats()
	if m.explain {
		right = m.renderExplanation()
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top, left, m.styles.Stats.Render(right))

	var s strings.Builder
	s.WriteString(main + "\n")
	if m.notice != "" {
		s.WriteString(m.styles.Notice.Render(m.notice))
	}
	s.WriteString("\n" + m.help.View(m.keys))
	return s.String()
}

func (m Model) renderBars() string {
	arr := m.ctrl.Presented()
	heights := make([]int, len(arr))
	for i, e := range arr {
		heights[i] = barHeight(e.Value)
	}

	var s strings.Builder
	for row := barRows; row >= 1; row-- {
		for i, e := range arr {
			cell := "  "
			if heights[i] >= row {
				cell = lipgloss.NewStyle().Foreground(m.theme.StateColor(e.State)).Render("██")
			}
			s.WriteString(cell + " ")
		}
		s.WriteString("\n")
	}
	for _, e := range arr {
		s.WriteString(m.styles.Subtle.Render(fmt.Sprintf("%2d", e.Value)) + " ")
	}
	return s.String()
}

func barHeight(v int) int {
	h := v * barRows / sorting.ValueMax
	if h < 1 {
		h = 1
	}
	if h > barRows {
		h = barRows
	}
	return h
}

func (m Model) renderCode() string {
	active := m.ctrl.HighlightedLine()
	lines := make([]string, len(sorting.Pseudocode))
	for i, src := range sorting.Pseudocode {
		n := i + 1
		if n == active {
			lines[i] = m.styles.ActiveCode.Render(fmt.Sprintf("▶ %2d  %s", n, src))
			continue
		}
		lines[i] = m.styles.Code.Render(fmt.Sprintf("  %2d  %s", n, src))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStats() string {
	c := m.ctrl
	var s strings.Builder

	status := strings.ToUpper(c.State().String())
	if c.Flourishing() {
		status += " ✦"
	}
	s.WriteString(m.styles.Status.Render(status) + "\n\n")

	row := func(label, value string) {
		s.WriteString(m.styles.Label.Render(label) + m.styles.Value.Render(value) + "\n")
	}
	row("Size", fmt.Sprintf("%d", c.ArraySize()))
	row("Speed", fmt.Sprintf("%d (%s)", c.Speed(), c.Delay()))
	row("Swaps", fmt.Sprintf("%d", c.SwapCount()))
	snap := m.tracker.snapshot()
	row("Comparisons", fmt.Sprintf("%.0f", snap["comparisons"]))
	row("Passes", fmt.Sprintf("%.0f", snap["passes"]))
	row("Steps", fmt.Sprintf("%.0f", snap["steps"]))
	row("Progress", ProgressBar(m.progress(), 20, m.theme.Sorted))

	if len(m.tracker.swaps) > 1 {
		chart := asciigraph.Plot(m.tracker.swaps, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Swaps"))
		s.WriteString(m.styles.Graph.Render(chart) + "\n")
	}

	s.WriteString("\n" + Separator(36, m.styles.Subtle) + "\n")
	s.WriteString(m.legend())
	return s.String()
}

// progress is the fraction of elements known to be in final position.
func (m Model) progress() float64 {
	if m.ctrl.State() == playback.Sorted {
		return 1
	}
	step, ok := m.ctrl.CurrentStep()
	if !ok || step.SortedIndex == sorting.NoBoundary || len(step.Array) == 0 {
		return 0
	}
	n := len(step.Array)
	return float64(n-step.SortedIndex) / float64(n)
}

func (m Model) legend() string {
	states := []sorting.ElementState{sorting.Default, sorting.Comparing, sorting.Swapping, sorting.Sorted}
	parts := make([]string, len(states))
	for i, st := range states {
		swatch := lipgloss.NewStyle().Foreground(m.theme.StateColor(st)).Render("■")
		parts[i] = swatch + " " + m.styles.Subtle.Render(st.String())
	}
	return strings.Join(parts, "  ")
}
