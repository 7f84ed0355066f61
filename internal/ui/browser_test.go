package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestBrowserFileSelectionStoresResult(t *testing.T) {
	restore := chdirTemp(t, map[string]string{
		"song.mp3": "data",
	})
	defer restore()

	m := NewBrowser()

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(BrowserModel)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(BrowserModel)
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	result := m.Result()
	if result.Path != "song.mp3" || result.Cancelled {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestBrowserToneSelectionStoresFrequency(t *testing.T) {
	restore := chdirTemp(t, map[string]string{})
	defer restore()

	m := NewBrowser()
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(BrowserModel)
	if !m.toneMode {
		t.Fatal("expected tone prompt after selecting the tone item")
	}

	m.input.SetValue("1000")
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(BrowserModel)

	result := m.Result()
	if result.ToneHz != 1000 || result.Path != "" || result.Cancelled {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestBrowserRejectsInaudibleTone(t *testing.T) {
	restore := chdirTemp(t, map[string]string{})
	defer restore()

	m := NewBrowser()
	m.toneMode = true
	m.input.SetValue("5")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(BrowserModel)
	if m.inputErr == "" {
		t.Fatal("expected an input error for 5 Hz")
	}
	if !m.Result().Cancelled {
		t.Fatal("expected no result yet")
	}
}

func TestBrowserCancel(t *testing.T) {
	restore := chdirTemp(t, map[string]string{})
	defer restore()

	m := NewBrowser()
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !model.(BrowserModel).Result().Cancelled {
		t.Fatal("expected cancelled result")
	}
}

func TestBrowserListsOnlyDecodableFiles(t *testing.T) {
	restore := chdirTemp(t, map[string]string{
		"b.flac":    "data",
		"a.OGG":     "data",
		"c.wav":     "data",
		"clip.aac":  "data",
		"notes.txt": "data",
	})
	defer restore()

	m := NewBrowser()

	var got []string
	for _, item := range m.list.Items() {
		if file, ok := item.(fileItem); ok {
			got = append(got, file.name+file.ext)
		}
	}
	want := []string{"a.OGG", "b.flac", "c.wav"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestParseToneHzDefaults(t *testing.T) {
	hz, err := parseToneHz("  ")
	if err != nil || hz != 440 {
		t.Fatalf("expected 440 Hz default, got %v (%v)", hz, err)
	}
}

func chdirTemp(t *testing.T, files map[string]string) func() {
	t.Helper()

	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	dir := t.TempDir()
	for name, contents := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir temp dir: %v", err)
	}

	return func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	}
}
