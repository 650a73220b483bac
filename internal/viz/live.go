// Package viz provides the interactive terminal view: running
// concentration charts with live rate-constant tuning.
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/kinsim/internal/kin"
)

const (
	chartWidth      = 70
	chartHeight     = 12
	historyCapacity = 600
)

var (
	chartStyle       = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Red, asciigraph.Green, asciigraph.Blue,
	asciigraph.Yellow, asciigraph.Aqua, asciigraph.Fuchsia,
}

type TickMsg time.Time

// Model holds the running simulation and its display buffers.
type Model struct {
	mech          kin.Mechanism
	integ         kin.Integrator
	conc          kin.Conc
	initialConc   kin.Conc
	t, dt         float64
	substeps      int
	histories     [][]float64
	running       bool
	mechName      string
	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
}

// NewModel initializes the live view for a mechanism.
func NewModel(mech kin.Mechanism, integ kin.Integrator, c0 kin.Conc, dt float64, mechName string) Model {
	params := make(map[string]float64)
	if cfg, ok := mech.(kin.Configurable); ok {
		for k, v := range cfg.GetParams() {
			params[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	initialParams := make(map[string]float64)
	for k, v := range params {
		keys = append(keys, k)
		if v == 0 {
			v = 1e-6
		}
		initialParams[k] = v
	}
	sort.Strings(keys)

	substeps := int(1.0 / (300 * dt))
	if substeps < 1 {
		substeps = 1
	}
	if substeps > 500 {
		substeps = 500
	}

	histories := make([][]float64, mech.Dim())
	for i := range histories {
		histories[i] = make([]float64, 0, historyCapacity)
	}

	return Model{
		mech:          mech,
		integ:         integ,
		conc:          c0.Clone(),
		initialConc:   c0.Clone(),
		t:             0,
		dt:            dt,
		substeps:      substeps,
		histories:     histories,
		running:       true,
		mechName:      mechName,
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
		selected:      0,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.substeps; i++ {
				m.step()
			}
			m.record()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	m.params[key] = newVal
	if cfg, ok := m.mech.(kin.Configurable); ok {
		cfg.SetParam(key, newVal)
	}
}

func (m *Model) step() {
	if adaptive, ok := m.integ.(kin.AdaptiveIntegrator); ok {
		newConc, suggested, _ := adaptive.StepAdaptive(m.mech, m.conc, m.t, m.dt, 1e-6)
		m.conc = newConc
		m.t += m.dt
		if suggested > 1e-8 && suggested < 0.01 {
			m.dt = suggested
		}
	} else {
		m.conc = m.integ.Step(m.mech, m.conc, m.t, m.dt)
		m.t += m.dt
	}
	for i, v := range m.conc {
		if v < 0 {
			m.conc[i] = 0
		}
	}
}

func (m *Model) record() {
	for i := range m.histories {
		if i < len(m.conc) {
			m.histories[i] = append(m.histories[i], m.conc[i])
			if len(m.histories[i]) > historyCapacity {
				m.histories[i] = m.histories[i][1:]
			}
		}
	}
}

func (m *Model) reset() {
	m.t = 0
	m.conc = m.initialConc.Clone()
	for i := range m.histories {
		m.histories[i] = m.histories[i][:0]
	}
	for k, v := range m.initialParams {
		m.params[k] = v
		if cfg, ok := m.mech.(kin.Configurable); ok {
			cfg.SetParam(k, v)
		}
	}
}

// View renders the chart panel and the stats panel side by side.
func (m Model) View() string {
	var chart string
	if len(m.histories) > 0 && len(m.histories[0]) > 1 {
		colors := seriesColors
		if len(m.histories) < len(colors) {
			colors = colors[:len(m.histories)]
		}
		chart = asciigraph.PlotMany(m.histories,
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption("concentration vs time"),
			asciigraph.SeriesColors(colors...),
		)
	} else {
		chart = "collecting samples..."
	}
	chartView := chartStyle.Render(chart)

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.mechName)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.4fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%.2e", m.dt)) + "\n")
	if cons, ok := m.mech.(kin.Conserver); ok {
		s.WriteString(labelStyle.Render("Total") + valueStyle.Render(fmt.Sprintf("%.6f", cons.Total(m.conc))) + "\n")
	}

	s.WriteString("\nSPECIES\n")
	for i, name := range m.mech.Species() {
		if i >= len(m.conc) {
			break
		}
		s.WriteString(fmt.Sprintf("  %-6s %.6f\n", name, m.conc[i]))
	}

	s.WriteString("\nRATE CONSTANTS\n")
	if len(m.params) > 0 {
		for i, k := range m.paramKeys {
			val, initial := m.params[k], m.initialParams[k]
			barWidth, ratio := 10, val/(2.0*initial)
			if ratio > 1 {
				ratio = 1
			} else if ratio < 0 {
				ratio = 0
			}
			filled := int(ratio * float64(barWidth))
			bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
			line := fmt.Sprintf("%-6s %s %.4g", k, bar, val)
			if i == m.selected {
				s.WriteString(activeParamStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nTab:Select ↑↓:Tune"))
	statsView := statsStyle.Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, chartView, statsView)
}
