package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lorenz/internal/analysis"
	"github.com/san-kum/lorenz/internal/dynamo"
)

const (
	width           = 80
	height          = 24
	trailCapacity   = 2000
	historyCapacity = 300
	frameRate       = time.Second / 30
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// LiveModel steps a field in real time and draws the trail of recent
// points through a rotatable camera.
type LiveModel struct {
	field         dynamo.TunableField
	stepper       dynamo.Stepper
	point         dynamo.Point3
	initial       dynamo.Point3
	t, dt         float64
	stepsPerTick  int
	steps         int
	canvas        *Canvas
	camera        *Camera
	trail         []dynamo.Point3
	zHistory      []float64
	running       bool
	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
	title         string
	err           error
}

// NewLiveModel builds a live view starting from x0. stepsPerTick controls
// how many integration steps are taken per rendered frame.
func NewLiveModel(field dynamo.TunableField, stepper dynamo.Stepper, x0 dynamo.Point3, dt float64, stepsPerTick int, title string) LiveModel {
	params := field.GetParams()
	initialParams := make(map[string]float64, len(params))
	keys := make([]string, 0, len(params))
	for k, v := range params {
		initialParams[k] = v
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}

	cam := NewCamera()
	// Frame the attractor around its equilibria (±sqrt(β(ρ−1)), ρ−1).
	if rho, ok := params["rho"]; ok {
		cam.Target = dynamo.Point3{0, 0, rho - 1}
		cam.Scale = 1 / (rho + 1)
	}

	return LiveModel{
		field:         field,
		stepper:       stepper,
		point:         x0,
		initial:       x0,
		dt:            dt,
		stepsPerTick:  stepsPerTick,
		canvas:        NewCanvas(width, height),
		camera:        cam,
		trail:         make([]dynamo.Point3, 0, trailCapacity),
		zHistory:      make([]float64, 0, historyCapacity),
		running:       true,
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
		title:         title,
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd { return tick() }

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
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
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "f":
			if len(m.trail) > 1 {
				m.camera.FitBounds(analysis.ComputeBounds(m.trail))
			}
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

// advance takes stepsPerTick steps, appending each point to the trail.
// A non-finite point stops the model and is kept as its error.
func (m *LiveModel) advance() {
	for i := 0; i < m.stepsPerTick; i++ {
		next := m.stepper.Step(m.field, m.point, m.dt)
		if !next.IsValid() {
			m.err = &dynamo.StepError{Step: m.steps + 1, Point: next, Wrapped: dynamo.ErrInvalidState}
			m.running = false
			return
		}
		m.point = next
		m.steps++
		m.t += m.dt
		m.trail = append(m.trail, next)
		if len(m.trail) > trailCapacity {
			m.trail = m.trail[len(m.trail)-trailCapacity:]
		}
	}
	m.zHistory = append(m.zHistory, m.point.Z())
	if len(m.zHistory) > historyCapacity {
		m.zHistory = m.zHistory[1:]
	}
}

func (m *LiveModel) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *LiveModel) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.params[key] * factor
	if err := m.field.SetParam(key, val); err != nil {
		m.err = err
		return
	}
	m.params[key] = val
}

// reset restores the seed point and the starting parameters.
func (m *LiveModel) reset() {
	m.point = m.initial
	m.t, m.steps = 0, 0
	m.trail = m.trail[:0]
	m.zHistory = m.zHistory[:0]
	m.err = nil
	m.running = true
	for k, v := range m.initialParams {
		if err := m.field.SetParam(k, v); err != nil {
			m.err = err
			continue
		}
		m.params[k] = v
	}
}

// Point returns the current state.
func (m LiveModel) Point() dynamo.Point3 { return m.point }

// Steps returns how many steps have been taken since the last reset.
func (m LiveModel) Steps() int { return m.steps }

// Err returns the error that stopped the model, if any.
func (m LiveModel) Err() error { return m.err }

func (m LiveModel) View() string {
	m.canvas.Clear()
	RenderTrajectory(m.canvas, m.trail, m.camera)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	status := StatusRunning.Render("RUNNING")
	switch {
	case m.err != nil:
		status = StatusError.Render("DIVERGED")
	case !m.running:
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	if len(m.zHistory) > 1 {
		chart := asciigraph.Plot(m.zHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("z(t)"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	s.WriteString(labelStyle.Render("Point") + valueStyle.Render(fmt.Sprintf("%.2f %.2f %.2f", m.point[0], m.point[1], m.point[2])) + "\n")
	if m.err != nil {
		s.WriteString(labelStyle.Render("Error") + StatusError.Render(m.err.Error()) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	for i, k := range m.paramKeys {
		val, initial := m.params[k], m.initialParams[k]
		line := fmt.Sprintf("%-6s %s %.3f", k, ParamBar(val, initial, 10), val)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nTab/↑↓:Tune  F:Fit\nxyz/XYZ:Rotate  +/-:Zoom"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
