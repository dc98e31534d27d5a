package timer

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pacer/internal/timeutil"
	"github.com/abhisek/pacer/internal/ui/layout"
	"github.com/abhisek/pacer/internal/ui/theme"
)

const tickInterval = time.Second

type tickMsg time.Time

// Model is the Bubble Tea model of the Pomodoro timer.
type Model struct {
	timer  *Pomodoro
	bar    progress.Model
	title  string
	notice string
	width  int
	quit   bool
}

// NewModel wraps a Pomodoro for display. title is shown in the header.
func NewModel(p *Pomodoro, title string) Model {
	return Model{
		timer: p,
		title: title,
		bar: progress.New(
			progress.WithWidth(40),
			progress.WithColors(theme.Secondary, theme.Primary),
			progress.WithScaled(true),
		),
		width: 60,
	}
}

// Timer returns the underlying state machine.
func (m Model) Timer() *Pomodoro { return m.timer }

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		if m.quit {
			return m, nil
		}
		if m.handle(m.timer.Tick(tickInterval)) {
			return m, tea.Quit
		}
		return m, tick()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		case "space", " ", "p":
			m.timer.Toggle()
			m.notice = ""
		case "s":
			if m.handle(m.timer.Skip()) {
				return m, tea.Quit
			}
		case "r":
			m.timer.Reset()
			m.notice = "Timer reset."
		}
	}
	return m, nil
}

// handle updates the notice for an event and reports whether to quit.
func (m *Model) handle(ev Event) bool {
	switch ev {
	case EventWorkDone:
		m.notice = "Work session complete. Press space to start your break."
	case EventBreakDone:
		m.notice = "Break over. Press space to start the next session."
	case EventFinished:
		m.notice = fmt.Sprintf("All %d sessions complete. Great work!", m.timer.Completed())
		m.quit = true
		return true
	}
	return false
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.SetContent(m.render())
	return v
}

func (m Model) render() string {
	p := m.timer

	phase := "Focus"
	phaseStyle := theme.Current
	if p.Phase() == PhaseBreak {
		phase = "Break"
		phaseStyle = theme.Watched
	}

	status := fmt.Sprintf("● %d done", p.Completed())
	if p.Cycles() > 0 {
		status = fmt.Sprintf("● %d/%d", p.Completed(), p.Cycles())
	}

	clock := lipgloss.NewStyle().Bold(true).Foreground(theme.Text).
		Render(timeutil.FormatClock(p.Remaining().Seconds()))

	title := m.title
	if title == "" {
		title = "Pomodoro"
	}

	var b strings.Builder
	b.WriteString(layout.RenderHeader(title, status, m.width))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  %s  %s  %s\n\n", phaseStyle.Render(phase), clock, theme.Label.Render(string(p.State())))
	b.WriteString("  " + m.bar.ViewAs(p.Elapsed()) + "\n\n")
	if m.notice != "" {
		b.WriteString("  " + theme.Hint.Render(m.notice) + "\n\n")
	}
	b.WriteString(layout.RenderFooter([]layout.KeyHint{
		{Key: "space", Description: "start/pause"},
		{Key: "s", Description: "skip"},
		{Key: "r", Description: "reset"},
		{Key: "q", Description: "quit"},
	}))
	b.WriteString("\n")
	return b.String()
}

// Run shows the timer until the user quits or the planned cycles finish,
// and returns the number of completed work intervals.
func Run(p *Pomodoro, title string) (int, error) {
	final, err := tea.NewProgram(NewModel(p, title)).Run()
	if err != nil {
		return 0, fmt.Errorf("run timer: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.timer.Completed(), nil
	}
	return p.Completed(), nil
}
