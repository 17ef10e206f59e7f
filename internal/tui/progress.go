package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/dynset"
	"github.com/san-kum/rigsim/internal/interval"
	"github.com/san-kum/rigsim/internal/sim"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// StepMsg reports an accepted step to the progress view.
type StepMsg struct {
	Info dynamo.StepInfo
	Box  interval.Vector
}

// DoneMsg ends the integration; Err is nil on success.
type DoneMsg struct{ Err error }

// Progress is the bubbletea model of a running integration.
type Progress struct {
	name       string
	start, end float64

	steps      int
	rejections int
	last       dynamo.StepInfo
	box        interval.Vector
	history    []float64
	plane      *PhasePlane

	done   bool
	err    error
	cancel context.CancelFunc

	width, height int
}

// NewProgress returns the view of an integration of name over
// [start, end]. cancel is called when the user quits early; it may be nil.
func NewProgress(name string, start, end float64, cancel context.CancelFunc) Progress {
	return Progress{
		name:    name,
		start:   start,
		end:     end,
		history: make([]float64, 0, 60),
		plane:   NewPhasePlane(48, 12, 0, 1),
		cancel:  cancel,
		width:   80,
		height:  24,
	}
}

func (m Progress) Init() tea.Cmd { return nil }

func (m Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.done && m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StepMsg:
		m.steps++
		m.rejections += msg.Info.Rejections
		m.last = msg.Info
		m.box = msg.Box
		m.plane.Add(msg.Box)
		m.history = append(m.history, math.Log10(math.Max(msg.Info.Width, 1e-300)))
		if len(m.history) > 60 {
			m.history = m.history[1:]
		}
	case DoneMsg:
		m.done = true
		m.err = msg.Err
	}
	return m, nil
}

func (m Progress) progress() float64 {
	if m.end <= m.start {
		return 1
	}
	p := (m.last.Time.Hi() - m.start) / (m.end - m.start)
	return math.Max(0, math.Min(1, p))
}

func (m Progress) View() string {
	var b strings.Builder

	statusIcon, statusText := green.Render("●"), green.Render("integrating")
	switch {
	case m.err != nil:
		statusIcon, statusText = red.Render("✕"), red.Render("failed")
	case m.done:
		statusIcon, statusText = cyan.Render("✓"), cyan.Render("done")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s\n", statusIcon, cyan.Render(m.name), statusText))

	barWidth := 36
	filled := int(m.progress() * float64(barWidth))
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))
	timeStr := fmt.Sprintf("t=%.6g/%.6g", m.last.Time.Hi(), m.end)
	b.WriteString(fmt.Sprintf("   %s %s\n\n", bar, dim.Render(timeStr)))

	b.WriteString(fmt.Sprintf("   %s %s  %s %s  %s %s  %s %s\n",
		dim.Render("steps"), white.Render(fmt.Sprint(m.steps)),
		dim.Render("rejected"), yellow.Render(fmt.Sprint(m.rejections)),
		dim.Render("h"), white.Render(fmt.Sprintf("%.4g", m.last.Step)),
		dim.Render("width"), white.Render(fmt.Sprintf("%.3e", m.last.Width))))

	if len(m.history) > 1 {
		b.WriteString(fmt.Sprintf("   %s %s\n", dim.Render("log₁₀ w"), cyan.Render(sparkline(m.history, 36))))
	}
	b.WriteString("\n")

	for i, x := range m.box {
		if i >= 6 {
			b.WriteString(dim.Render(fmt.Sprintf("   … %d more\n", len(m.box)-i)))
			break
		}
		b.WriteString(fmt.Sprintf("   %s %s %s %s\n",
			dim.Render(fmt.Sprintf("x%d", i)),
			white.Render(fmt.Sprintf("%+.12f", x.Mid())),
			dim.Render("±"),
			yellow.Render(fmt.Sprintf("%.2e", x.Rad()))))
	}

	if m.plane.Len() > 0 && len(m.box) >= 2 {
		b.WriteString("\n" + dim.Render("   x0 × x1") + "\n")
		for _, row := range m.plane.Render() {
			b.WriteString("   " + dimmer.Render("│") + row + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n   " + red.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + dim.Render("   q quit") + "\n")
	return b.String()
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		sb.WriteRune(chars[max(0, min(7, idx))])
	}
	return sb.String()
}

// Run integrates set to tEnd with tm while showing the progress view. It
// returns the integration error, or ctx's error when the user quits.
func Run(ctx context.Context, name string, tm *sim.TimeMap, set *dynset.Doubleton, tEnd float64) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgress(name, set.Time.Lo(), tEnd, cancel), tea.WithAltScreen())
	errc := make(chan error, 1)
	go func() {
		err := tm.RunWithCallback(ctx, set, tEnd, func(info dynamo.StepInfo, next *dynset.Doubleton) bool {
			p.Send(StepMsg{Info: info, Box: next.Hull()})
			return true
		})
		errc <- err
		p.Send(DoneMsg{Err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-errc
		return err
	}
	cancel()
	return <-errc
}
