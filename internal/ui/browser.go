package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/wavescape/internal/track"
)

// BrowserSelectedMsg reports the file picked in the browser.
type BrowserSelectedMsg struct {
	Path string
}

// BrowserCancelledMsg reports that the browser was closed without a pick.
type BrowserCancelledMsg struct{}

type fileItem struct {
	name string
	ext  string
}

func (i fileItem) Title() string       { return i.name }
func (i fileItem) Description() string { return i.ext }
func (i fileItem) FilterValue() string { return i.name }

// BrowserModel lists the decodable audio files in one directory.
type BrowserModel struct {
	dir  string
	list list.Model
	err  error
}

// NewBrowser scans dir for files with a supported extension.
func NewBrowser(dir string) BrowserModel {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BrowserModel{dir: dir, err: fmt.Errorf("cannot read directory: %w", err)}
	}

	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !track.IsSupportedExt(ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		items = append(items, fileItem{name: name, ext: filepath.Ext(e.Name())})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	l := list.New(items, delegate, 80, 20)
	l.Title = "wavescape: open a track"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	return BrowserModel{dir: dir, list: l}
}

// Error returns the initialization error, if any.
func (m BrowserModel) Error() error {
	return m.err
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

func (m BrowserModel) Update(msg tea.Msg) (BrowserModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't intercept keys when filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(fileItem); ok {
				path := filepath.Join(m.dir, item.name+item.ext)
				return m, func() tea.Msg { return BrowserSelectedMsg{Path: path} }
			}
			return m, nil
		case "q", "esc", "ctrl+c":
			return m, func() tea.Msg { return BrowserCancelledMsg{} }
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BrowserModel) View() string {
	if m.err != nil {
		return "\n  " + errorStyle.Render(m.err.Error()) + "\n"
	}
	return m.list.View()
}
