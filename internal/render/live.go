package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pdelab/internal/pde"
)

const (
	canvasWidth    = 80
	canvasHeight   = 20
	massHistoryCap = 400
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// EngineFactory rebuilds a fresh engine and system for reset: the frame
// sequence itself is non-restartable.
type EngineFactory func() (*pde.Engine, pde.System, error)

// Live is the bubbletea model animating the evolving field one frame per
// tick, with interactive parameter tuning for Configurable systems.
type Live struct {
	build       EngineFactory
	engine      *pde.Engine
	sys         pde.System
	name        string
	fps         int
	totalFrames int

	frame     pde.Frame
	haveFrame bool
	finished  bool
	running   bool
	failed    error

	canvas      *Canvas
	yMin, yMax  float64
	massHistory []float64

	params    map[string]float64
	paramKeys []string
	selected  int
}

func NewLive(name string, build EngineFactory, totalFrames, fps int) (*Live, error) {
	engine, sys, err := build()
	if err != nil {
		return nil, err
	}
	if fps <= 0 {
		fps = 30
	}

	l := &Live{
		build:       build,
		engine:      engine,
		sys:         sys,
		name:        name,
		fps:         fps,
		totalFrames: totalFrames,
		running:     true,
		canvas:      NewCanvas(canvasWidth, canvasHeight),
		massHistory: make([]float64, 0, massHistoryCap),
	}
	l.loadParams()
	l.resetRange()
	return l, nil
}

func (l *Live) loadParams() {
	l.params = make(map[string]float64)
	if c, ok := l.sys.(pde.Configurable); ok {
		for k, v := range c.GetParams() {
			l.params[k] = v
		}
	}
	l.paramKeys = make([]string, 0, len(l.params))
	for k := range l.params {
		l.paramKeys = append(l.paramKeys, k)
	}
	sort.Strings(l.paramKeys)
	if l.selected >= len(l.paramKeys) {
		l.selected = 0
	}
}

func (l *Live) resetRange() {
	init := l.engine.History().Row(0)
	l.yMin, l.yMax = init[0].Min(), init[0].Max()
	for _, f := range init[1:] {
		if m := f.Min(); m < l.yMin {
			l.yMin = m
		}
		if m := f.Max(); m > l.yMax {
			l.yMax = m
		}
	}
	if l.yMax == l.yMin {
		l.yMax = l.yMin + 1
	}
}

func (l Live) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(l.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (l Live) Init() tea.Cmd { return l.tick() }

func (l Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return l, tea.Quit
		case " ":
			l.running = !l.running
		case "r":
			l.reset()
		case "tab":
			l.cycleParam()
		case "up", "k":
			l.adjustParam(1.05)
		case "down", "j":
			l.adjustParam(0.95)
		}
	case TickMsg:
		if l.running && !l.finished {
			l.step()
		}
		return l, l.tick()
	}
	return l, nil
}

func (l *Live) step() {
	frame, ok := l.engine.Next()
	if !ok {
		l.finished = true
		l.failed = l.engine.Err()
		return
	}
	l.frame = frame
	l.haveFrame = true

	for _, f := range frame.Fields {
		if m := f.Min(); m < l.yMin {
			l.yMin = m
		}
		if m := f.Max(); m > l.yMax {
			l.yMax = m
		}
	}

	l.massHistory = append(l.massHistory, frame.Fields[0].Sum())
	if len(l.massHistory) > massHistoryCap {
		l.massHistory = l.massHistory[1:]
	}
}

func (l *Live) reset() {
	engine, sys, err := l.build()
	if err != nil {
		l.failed = err
		l.finished = true
		return
	}
	l.engine, l.sys = engine, sys
	l.frame = pde.Frame{}
	l.haveFrame = false
	l.finished = false
	l.failed = nil
	l.running = true
	l.massHistory = l.massHistory[:0]
	l.loadParams()
	l.resetRange()
}

func (l *Live) cycleParam() {
	if len(l.paramKeys) == 0 {
		return
	}
	l.selected = (l.selected + 1) % len(l.paramKeys)
}

func (l *Live) adjustParam(factor float64) {
	if len(l.paramKeys) == 0 {
		return
	}
	key := l.paramKeys[l.selected]
	val := l.params[key] * factor
	l.params[key] = val
	if c, ok := l.sys.(pde.Configurable); ok {
		c.SetParam(key, val)
	}
}

func (l Live) View() string {
	l.draw()
	canvasView := canvasStyle.Render(l.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(l.name)) + "\n")

	status := "RUNNING"
	switch {
	case l.failed != nil:
		status = "DIVERGED: " + l.failed.Error()
	case l.finished:
		status = "DONE"
	case !l.running:
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(l.massHistory) > 1 {
		chart := asciigraph.Plot(l.massHistory, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("total mass"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	t, idx := 0.0, 0
	if l.haveFrame {
		t, idx = l.frame.Time, l.frame.Index
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.4g", t)) + "\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d/%d", idx, l.totalFrames)) + "\n")
	if l.haveFrame {
		f := l.frame.Fields[0]
		s.WriteString(labelStyle.Render("Range") + valueStyle.Render(fmt.Sprintf("%.3g .. %.3g", f.Min(), f.Max())) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	if len(l.paramKeys) > 0 {
		for i, k := range l.paramKeys {
			line := fmt.Sprintf("%-12s %.4g", k, l.params[k])
			if i == l.selected {
				s.WriteString(activeStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}

	s.WriteString(helpStyle.Render("\n────────────────────\nSP:Pause R:Restart Q:Quit\nTab:Param ↑↓:Tune"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

func (l *Live) draw() {
	l.canvas.Clear()
	fields := l.engine.History().Row(0)
	if l.haveFrame {
		fields = l.frame.Fields
	}
	for _, f := range fields {
		l.canvas.Profile(f, l.yMin, l.yMax)
	}
}
