package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause      key.Binding
	NextViz    key.Binding
	PrevViz    key.Binding
	ColorMode  key.Binding
	ScaleUp    key.Binding
	ScaleDown  key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Restart    key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Pause:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		NextViz:    key.NewBinding(key.WithKeys("v", "tab"), key.WithHelp("v/V", "style")),
		PrevViz:    key.NewBinding(key.WithKeys("V", "shift+tab")),
		ColorMode:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "colour")),
		ScaleUp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "scale")),
		ScaleDown:  key.NewBinding(key.WithKeys("-", "_")),
		VolumeUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "volume")),
		VolumeDown: key.NewBinding(key.WithKeys("down", "j")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.NextViz, k.ColorMode, k.ScaleUp, k.VolumeUp, k.Restart, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
