package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/wavescape/internal/settings"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#00789E", Dark: "#5FD7FF"})

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#222222", Dark: "#EEEEEE"})

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#777777", Dark: "#808080"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#444444", Dark: "#B0B0B0"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#B00020", Dark: "#FF5F5F"})
)

// Mode badges follow the scene: the heat ramp for realtime bars, the
// waveform's cool end for the static model, station hues for the lab.
var modeColors = [settings.ModeCount]lipgloss.AdaptiveColor{
	settings.ModeRealtime:         {Light: "#B35900", Dark: "#FF8C00"},
	settings.ModeStaticModel:      {Light: "#1F4FA0", Dark: "#6FA8FF"},
	settings.ModeDecompositionLab: {Light: "#6A2BA0", Dark: "#C58CFF"},
}

func modeStyle(m settings.Mode) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	if m.Valid() {
		s = s.Foreground(modeColors[m])
	}
	return s
}
