package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/canvis/internal/media"
)

// BrowserResult holds the outcome of the file browser. ToneHz is set instead
// of Path when the user asked for a generated test tone.
type BrowserResult struct {
	Path      string
	ToneHz    float64
	Cancelled bool
}

type fileItem struct {
	name string
	ext  string
}

func (i fileItem) Title() string       { return i.name }
func (i fileItem) Description() string { return i.ext }
func (i fileItem) FilterValue() string { return i.name }

type toneItem struct{}

func (i toneItem) Title() string       { return "Test tone..." }
func (i toneItem) Description() string { return "play a generated sine wave" }
func (i toneItem) FilterValue() string { return "tone" }

// BrowserModel is the Bubbletea model for the file browser screen.
type BrowserModel struct {
	list     list.Model
	input    textinput.Model
	toneMode bool
	inputErr string
	result   *BrowserResult
	err      error
}

// NewBrowser creates a file browser listing the audio files in the current
// directory.
func NewBrowser() BrowserModel {
	entries, err := os.ReadDir(".")
	if err != nil {
		return BrowserModel{err: fmt.Errorf("cannot read directory: %w", err)}
	}

	var files []fileItem
	for _, e := range entries {
		if e.IsDir() || !media.IsSupportedExt(filepath.Ext(e.Name())) {
			continue
		}
		ext := filepath.Ext(e.Name())
		files = append(files, fileItem{name: strings.TrimSuffix(e.Name(), ext), ext: ext})
	}
	sort.Slice(files, func(a, b int) bool {
		return strings.ToLower(files[a].name) < strings.ToLower(files[b].name)
	})

	items := []list.Item{toneItem{}}
	for _, f := range files {
		items = append(items, f)
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(inkColor).
		BorderLeftForeground(accent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(dimColor).
		BorderLeftForeground(accent)

	l := list.New(items, delegate, 80, 20)
	l.Title = "canvis"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = brandStyle

	ti := textinput.New()
	ti.Placeholder = "440"
	ti.CharLimit = 8
	ti.Width = 12

	return BrowserModel{list: l, input: ti}
}

// HasError returns true if the browser could not be initialized.
func (m BrowserModel) HasError() bool {
	return m.err != nil
}

func (m BrowserModel) Error() error {
	return m.err
}

// Result returns the browser result after the program finishes.
func (m BrowserModel) Result() BrowserResult {
	if m.result != nil {
		return *m.result
	}
	return BrowserResult{Cancelled: true}
}

func (m BrowserModel) Init() tea.Cmd {
	return tea.SetWindowTitle("canvis")
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.toneMode {
		return m.updateToneInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			switch item := m.list.SelectedItem().(type) {
			case toneItem:
				m.toneMode = true
				m.input.Focus()
				return m, tea.Batch(textinput.Blink, tea.SetWindowTitle("canvis - test tone"))
			case fileItem:
				m.result = &BrowserResult{Path: item.name + item.ext}
				return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
			}
		case "q", "esc", "ctrl+c":
			m.result = &BrowserResult{Cancelled: true}
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
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

func (m BrowserModel) updateToneInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			hz, err := parseToneHz(m.input.Value())
			if err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			m.result = &BrowserResult{ToneHz: hz}
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		case "esc":
			m.toneMode = false
			m.inputErr = ""
			m.input.Reset()
			m.input.Blur()
			return m, tea.SetWindowTitle("canvis")
		case "ctrl+c":
			m.result = &BrowserResult{Cancelled: true}
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// parseToneHz accepts an audible frequency; empty input means 440 Hz.
func parseToneHz(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 440, nil
	}
	hz, err := strconv.ParseFloat(s, 64)
	if err != nil || hz < 20 || hz > 20000 {
		return 0, fmt.Errorf("frequency must be between 20 and 20000 Hz")
	}
	return hz, nil
}

func (m BrowserModel) View() string {
	if m.toneMode {
		s := "\n"
		s += "  " + brandStyle.Render("canvis") + "\n"
		s += "\n"
		s += "  " + statusStyle.Render("Tone frequency (Hz):") + "\n"
		s += "  " + m.input.View() + "\n"
		if m.inputErr != "" {
			s += "  " + alertStyle.Render(m.inputErr) + "\n"
		}
		s += "\n"
		s += "  " + hintStyle.Render("enter confirm  esc back  ctrl+c quit") + "\n"
		return s
	}
	return m.list.View()
}
