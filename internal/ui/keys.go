package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Pause      key.Binding
	SeekBack   key.Binding
	SeekFwd    key.Binding
	Mode       key.Binding
	Bars       key.Binding
	Scope      key.Binding
	Marker     key.Binding
	LabModel   key.Binding
	Smooth     key.Binding
	Projection key.Binding
	FewerBars  key.Binding
	MoreBars   key.Binding
	SmallerFFT key.Binding
	LargerFFT  key.Binding
	Narrower   key.Binding
	Wider      key.Binding
	Orbit      key.Binding
	Zoom       key.Binding
	Volume     key.Binding
	Open       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pause:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		SeekBack:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "-5s")),
		SeekFwd:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "+5s")),
		Mode:       key.NewBinding(key.WithKeys("m", "tab"), key.WithHelp("m", "mode")),
		Bars:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bars")),
		Scope:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "scope")),
		Marker:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "marker")),
		LabModel:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "lab model")),
		Smooth:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "smoothing")),
		Projection: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projection")),
		FewerBars:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "fewer bars")),
		MoreBars:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "more bars")),
		SmallerFFT: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "smaller fft")),
		LargerFFT:  key.NewBinding(key.WithKeys("=", "+"), key.WithHelp("=", "larger fft")),
		Narrower:   key.NewBinding(key.WithKeys(","), key.WithHelp(",", "narrower")),
		Wider:      key.NewBinding(key.WithKeys("."), key.WithHelp(".", "wider")),
		Orbit:      key.NewBinding(key.WithKeys("h", "j", "k", "l"), key.WithHelp("hjkl", "orbit")),
		Zoom:       key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "zoom")),
		Volume:     key.NewBinding(key.WithKeys("<", ">"), key.WithHelp("</>", "volume")),
		Open:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "open")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.SeekBack, k.SeekFwd, k.Mode, k.Open, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.SeekBack, k.SeekFwd, k.Volume, k.Open},
		{k.Mode, k.Bars, k.Scope, k.Marker, k.LabModel, k.Smooth},
		{k.FewerBars, k.MoreBars, k.SmallerFFT, k.LargerFFT, k.Narrower, k.Wider},
		{k.Projection, k.Orbit, k.Zoom, k.Help, k.Quit},
	}
}

func isQuit(k keyMap, msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Quit)
}
