package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const frameInterval = time.Second / 30

type frameMsg time.Time

// FileChangedMsg asks the model to reload a file, typically sent by a
// filesystem watcher.
type FileChangedMsg struct {
	Path string
}

type fileReadMsg struct {
	path string
	data []byte
	err  error
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
