package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/olivier-w/wavescape/internal/scene"
	"github.com/olivier-w/wavescape/internal/settings"
	"github.com/olivier-w/wavescape/internal/util"
	"github.com/olivier-w/wavescape/internal/viz"
)

const (
	seekStep    = 5 * time.Second
	volumeStep  = 0.05
	barStep     = 16
	spreadStep  = 0.25
	orbitStep   = 0.1
	zoomIn      = 0.9
	zoomOut     = 1 / zoomIn
	canvasTop   = 2 // header and title lines
	minCanvasHt = 3
)

// Player is the playback control surface the keyboard drives.
type Player interface {
	TogglePause()
	Seek(pos time.Duration)
	Position() time.Duration
	Volume() float64
	SetVolume(v float64)
	Close()
}

// Options configure a Model.
type Options struct {
	Path string // file to open at start; empty opens the browser
	Dir  string // directory the browser lists
	Log  *zap.Logger
}

// Model is the Bubbletea model for the wavescape TUI.
type Model struct {
	engine *viz.Engine
	graph  *scene.Graph
	player Player
	log    *zap.Logger

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	browser  BrowserModel
	browsing bool
	dir      string
	path     string

	frame    viz.Frame
	width    int
	height   int
	quitting bool
}

// New creates a Model rendering graph, which must be the scene the engine
// was built on.
func New(engine *viz.Engine, graph *scene.Graph, player Player, opts Options) Model {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	m := Model{
		engine:  engine,
		graph:   graph,
		player:  player,
		log:     opts.Log,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: s,
		dir:     opts.Dir,
		path:    opts.Path,
		width:   80,
		height:  24,
	}
	if m.path == "" {
		m.browser = NewBrowser(m.dir)
		m.browsing = true
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameCmd(), m.spinner.Tick, tea.SetWindowTitle("wavescape")}
	if m.path != "" {
		cmds = append(cmds, readFileCmd(m.path))
	}
	return tea.Batch(cmds...)
}

func readFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return fileReadMsg{path: path, data: data, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.browsing {
			m.browser, _ = m.browser.Update(msg)
		}
		return m, nil

	case frameMsg:
		m.frame = m.engine.Tick()
		return m, frameCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case BrowserSelectedMsg:
		m.browsing = false
		m.path = msg.Path
		return m, readFileCmd(msg.Path)

	case BrowserCancelledMsg:
		m.browsing = false
		if m.path == "" {
			return m.quit()
		}
		return m, nil

	case fileReadMsg:
		if msg.err != nil {
			m.log.Warn("reading file failed", zap.String("path", msg.path), zap.Error(msg.err))
			m.engine.SetStatus(fmt.Sprintf("could not read %s: %v", filepath.Base(msg.path), msg.err))
			return m, nil
		}
		m.engine.Load(filepath.Base(msg.path), msg.data)
		return m, tea.SetWindowTitle(filepath.Base(msg.path) + " - wavescape")

	case FileChangedMsg:
		if msg.Path != m.path {
			return m, nil
		}
		m.log.Info("file changed, reloading", zap.String("path", msg.Path))
		return m, readFileCmd(msg.Path)
	}

	if m.browsing {
		var cmd tea.Cmd
		m.browser, cmd = m.browser.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.player.Close()
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	coord := m.engine.Settings()
	s := coord.Snapshot()
	orbit := m.engine.Orbit()

	switch {
	case isQuit(m.keys, msg):
		return m.quit()
	case key.Matches(msg, m.keys.Pause):
		m.player.TogglePause()
	case key.Matches(msg, m.keys.SeekBack):
		m.player.Seek(m.player.Position() - seekStep)
	case key.Matches(msg, m.keys.SeekFwd):
		m.player.Seek(m.player.Position() + seekStep)
	case key.Matches(msg, m.keys.Volume):
		step := volumeStep
		if msg.String() == "<" {
			step = -step
		}
		m.player.SetVolume(m.player.Volume() + step)
	case key.Matches(msg, m.keys.Mode):
		coord.CycleMode()
	case key.Matches(msg, m.keys.Bars):
		coord.Toggle(settings.FieldShowBars)
	case key.Matches(msg, m.keys.Scope):
		coord.Toggle(settings.FieldShowScope)
	case key.Matches(msg, m.keys.Marker):
		coord.Toggle(settings.FieldShowMarker)
	case key.Matches(msg, m.keys.LabModel):
		coord.Toggle(settings.FieldLabShowModel)
	case key.Matches(msg, m.keys.Smooth):
		coord.Toggle(settings.FieldSmoothBars)
	case key.Matches(msg, m.keys.Projection):
		next := scene.Orthographic
		if s.Projection == scene.Orthographic {
			next = scene.Perspective
		}
		coord.SetProjection(next)
	case key.Matches(msg, m.keys.FewerBars):
		coord.SetBarCount(s.BarCount - barStep)
	case key.Matches(msg, m.keys.MoreBars):
		coord.SetBarCount(s.BarCount + barStep)
	case key.Matches(msg, m.keys.SmallerFFT):
		coord.SetFFTSize(s.FFTSize / 2)
	case key.Matches(msg, m.keys.LargerFFT):
		coord.SetFFTSize(s.FFTSize * 2)
	case key.Matches(msg, m.keys.Narrower):
		coord.SetSpread(s.Spread - spreadStep)
	case key.Matches(msg, m.keys.Wider):
		coord.SetSpread(s.Spread + spreadStep)
	case key.Matches(msg, m.keys.Orbit):
		switch msg.String() {
		case "h":
			orbit.Rotate(-orbitStep, 0)
		case "l":
			orbit.Rotate(orbitStep, 0)
		case "j":
			orbit.Rotate(0, -orbitStep/2)
		case "k":
			orbit.Rotate(0, orbitStep/2)
		}
	case key.Matches(msg, m.keys.Zoom):
		if msg.String() == "up" {
			orbit.Zoom(zoomIn)
		} else {
			orbit.Zoom(zoomOut)
		}
	case key.Matches(msg, m.keys.Open):
		m.browser = NewBrowser(m.dir)
		m.browser, _ = m.browser.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.browsing = true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// canvasSize returns the scene area in cells.
func (m Model) canvasSize() (cols, rows int) {
	helpLines := strings.Count(m.help.View(m.keys), "\n") + 1
	rows = m.height - canvasTop - 2 - helpLines
	return max(m.width, 1), max(rows, minCanvasHt)
}

// pointer maps a mouse cell to dot coordinates on the canvas.
func (m Model) pointer(msg tea.MouseMsg) (viz.Viewport, float64, float64) {
	cols, rows := m.canvasSize()
	vp := viz.Viewport{Width: cols * dotsX, Height: rows * dotsY}
	x := float64(msg.X*dotsX) + dotsX/2
	y := float64((msg.Y-canvasTop)*dotsY) + dotsY/2
	return vp, x, y
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	vp, x, y := m.pointer(msg)
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.engine.Orbit().Zoom(zoomIn)
		return m
	case tea.MouseButtonWheelDown:
		m.engine.Orbit().Zoom(zoomOut)
		return m
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.engine.PointerDown(vp, x, y)
		}
	case tea.MouseActionMotion:
		m.engine.PointerMove(vp, x, y)
	case tea.MouseActionRelease:
		m.engine.PointerUp()
	}
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.browsing {
		return m.browser.View()
	}

	f := m.frame
	cols, rows := m.canvasSize()

	header := headerStyle.Render("wavescape") + "  " + modeStyle(f.Mode).Render(f.Mode.String())
	if f.Loading {
		header += "  " + m.spinner.View()
	}
	title := titleStyle.Render(f.Title)
	if f.Title == "" {
		title = dimStyle.Render("no track")
	}

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(title + "\n")
	b.WriteString(renderScene(m.graph, *m.engine.Camera(), cols, rows).String() + "\n")

	elapsed := util.FormatDuration(f.Position)
	total := util.FormatDuration(f.Duration)
	barWidth := max(m.width-len(elapsed)-len(total)-2, 10)
	b.WriteString(fmt.Sprintf("%s %s %s\n",
		dimStyle.Render(elapsed),
		modeStyle(f.Mode).Render(renderTimeline(f.Progress, barWidth, f.Scrubbing)),
		dimStyle.Render(total)))

	state := "paused"
	if f.Playing {
		state = "playing"
	}
	s := m.engine.Settings().Snapshot()
	info := fmt.Sprintf("%s  fft %d  bars %d  spread %.2f  %s  %s",
		state, s.FFTSize, s.BarCount, s.Spread, s.Projection, renderVolumePercent(m.player.Volume()))
	if f.Status != "" {
		info += "  " + f.Status
	}
	b.WriteString(statusStyle.Render(info) + "\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
