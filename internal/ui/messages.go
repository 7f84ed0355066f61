package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg time.Time
type playbackEndedMsg struct{}

// frameMsg carries the latest canvas frame already converted for the terminal.
type frameMsg string

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitFrame(frames <-chan string) tea.Cmd {
	if frames == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-frames
		if !ok {
			return nil
		}
		return frameMsg(s)
	}
}
