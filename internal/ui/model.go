package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/canvis/internal/config"
	"github.com/olivier-w/canvis/internal/logx"
	"github.com/olivier-w/canvis/internal/player"
	"github.com/olivier-w/canvis/internal/scheduler"
	"github.com/olivier-w/canvis/internal/util"
	"github.com/olivier-w/canvis/internal/video"
	"github.com/olivier-w/canvis/internal/visualizer"
)

const (
	scaleStep  = 10
	volumeStep = 0.05
	// chromeLines is everything on screen except the canvas.
	chromeLines = 13
)

// Playback is the part of the player the UI drives.
type Playback interface {
	TogglePause()
	Paused() bool
	Position() time.Duration
	Duration() time.Duration
	Volume() float64
	AdjustVolume(delta float64)
	Restart() error
	Done() <-chan struct{}
	Close()
}

// Prefs persists settings between runs.
type Prefs interface {
	Save(config.Settings) error
}

// Session bundles what the player screen needs.
type Session struct {
	Player    Playback
	Metadata  player.Metadata
	Scheduler *scheduler.Scheduler
	Store     *config.Store
	Registry  *visualizer.Registry
	Pump      *FramePump
	Prefs     Prefs
}

// Model is the Bubbletea model for the visualizer screen.
type Model struct {
	player   Playback
	metadata player.Metadata
	sched    *scheduler.Scheduler
	store    *config.Store
	reg      *visualizer.Registry
	pump     *FramePump
	prefs    Prefs

	keys     keyMap
	help     help.Model
	progress progress.Model
	meter    volumeMeter

	frame    string
	elapsed  time.Duration
	duration time.Duration
	volume   float64
	level    float64
	paused   bool
	width    int
	height   int
	status   string
	quitting bool
}

func New(s Session) Model {
	vol := s.Player.Volume()
	return Model{
		player:   s.Player,
		metadata: s.Metadata,
		sched:    s.Scheduler,
		store:    s.Store,
		reg:      s.Registry,
		pump:     s.Pump,
		prefs:    s.Prefs,
		keys:     defaultKeys(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		meter:    newVolumeMeter(10, vol),
		duration: s.Player.Duration(),
		volume:   vol,
		level:    vol,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), checkDone(m.player), tea.SetWindowTitle(windowTitle(m.metadata.Title, false))}
	if m.pump != nil {
		cmds = append(cmds, waitFrame(m.pump.Frames()))
	}
	return tea.Batch(cmds...)
}

func checkDone(p Playback) tea.Cmd {
	return func() tea.Msg {
		<-p.Done()
		return playbackEndedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		m.frame = string(msg)
		return m, waitFrame(m.pump.Frames())

	case tickMsg:
		m.elapsed = m.player.Position()
		m.volume = m.player.Volume()
		m.paused = m.player.Paused()
		m.level = m.meter.step(m.volume)
		return m, tickCmd()

	case playbackEndedMsg:
		m.elapsed = m.duration
		return m.quit()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resizeCanvas()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Pause):
		m.player.TogglePause()
		m.paused = m.player.Paused()
		return m, tea.SetWindowTitle(windowTitle(m.metadata.Title, m.paused))
	case key.Matches(msg, m.keys.NextViz):
		m.selectVisualizer(m.reg.Next(m.sched.Name(), 1))
	case key.Matches(msg, m.keys.PrevViz):
		m.selectVisualizer(m.reg.Next(m.sched.Name(), -1))
	case key.Matches(msg, m.keys.ColorMode):
		m.update(func(s *config.Settings) {
			if s.ColorMode == config.Static.String() {
				s.ColorMode = config.Dynamic.String()
			} else {
				s.ColorMode = config.Static.String()
			}
		})
	case key.Matches(msg, m.keys.ScaleUp):
		m.update(func(s *config.Settings) { s.Scale = clampScale(s.Scale + scaleStep) })
	case key.Matches(msg, m.keys.ScaleDown):
		m.update(func(s *config.Settings) { s.Scale = clampScale(s.Scale - scaleStep) })
	case key.Matches(msg, m.keys.VolumeUp):
		m.player.AdjustVolume(volumeStep)
		m.volume = m.player.Volume()
	case key.Matches(msg, m.keys.VolumeDown):
		m.player.AdjustVolume(-volumeStep)
		m.volume = m.player.Volume()
	case key.Matches(msg, m.keys.Restart):
		if err := m.player.Restart(); err != nil {
			m.status = fmt.Sprintf("Restart failed: %v", err)
			return m, nil
		}
		m.elapsed = 0
		m.paused = false
		return m, checkDone(m.player)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.sched.Stop()
	m.player.Close()
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

func (m *Model) selectVisualizer(name string) {
	m.sched.Select(name)
	m.update(func(s *config.Settings) { s.Visualizer = name })
}

func (m *Model) update(fn func(*config.Settings)) {
	if err := m.store.Update(fn); err != nil {
		logx.Warn("Ignoring settings change: %v", err)
		m.status = err.Error()
		return
	}
	m.status = ""
	if m.prefs != nil {
		if err := m.prefs.Save(m.store.Settings()); err != nil {
			logx.Warn("Saving preferences: %v", err)
		}
	}
}

func (m *Model) resizeCanvas() {
	if m.pump == nil {
		return
	}
	cfg := m.store.Snapshot()
	w, h := video.Fit(m.width-4, m.height-chromeLines, cfg.Width, cfg.Height)
	m.pump.SetSize(w, h)
}

func clampScale(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > 1000 {
		return 1000
	}
	return v
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.width
	if w < 30 {
		w = 60
	}

	name := m.sched.Name()
	header := brandStyle.Render("canvis")
	title := trackStyle.Render(m.metadata.Title)

	subtitle := ""
	if m.metadata.Artist != "" && m.metadata.Album != "" {
		subtitle = creditStyle.Render(fmt.Sprintf("%s - %s", m.metadata.Artist, m.metadata.Album))
	} else if m.metadata.Artist != "" {
		subtitle = creditStyle.Render(m.metadata.Artist)
	}

	elapsed := util.FormatDuration(m.elapsed)
	total := util.FormatDuration(m.duration)
	bar := m.progress
	bar.Width = w - len(elapsed) - len(total) - 6
	if bar.Width < 10 {
		bar.Width = 10
	}
	ratio := 0.0
	if m.duration > 0 {
		ratio = m.elapsed.Seconds() / m.duration.Seconds()
	}
	progressLine := fmt.Sprintf("%s %s %s", clockStyle.Render(elapsed), bar.ViewAs(ratio), clockStyle.Render(total))

	statusIcon, statusText := "▶", "playing"
	if m.paused {
		statusIcon, statusText = "❚❚", "paused"
	}
	cfg := m.store.Snapshot()
	leftText := fmt.Sprintf("%s  %s  %s  %s  %g%%", statusIcon, statusText, m.describe(name), cfg.ColorMode, cfg.ScalePercent)
	rightText := renderVolumeMeter(m.level, 10) + " " + renderVolumePercent(m.volume)
	gap := w - lipgloss.Width(leftText) - lipgloss.Width(rightText) - 4
	if gap < 2 {
		gap = 2
	}
	statusLine := statusStyle.Render(leftText) + spaces(gap) + statusStyle.Render(rightText)

	lines := "\n"
	lines += "  " + header + "\n"
	lines += "\n"
	lines += "  " + title + "\n"
	if subtitle != "" {
		lines += "  " + subtitle + "\n"
	}
	if m.frame != "" {
		lines += frameStyle(cfg, m.paused).Render(m.frame) + "\n"
	}
	lines += "\n"
	lines += "  " + progressLine + "\n"
	lines += "\n"
	lines += "  " + statusLine + "\n"
	if m.status != "" {
		lines += "  " + alertStyle.Render(m.status) + "\n"
	}
	lines += "\n"
	lines += "  " + hintStyle.Render(m.help.View(m.keys)) + "\n"

	return lines
}

// describe is "name (family)".
func (m Model) describe(name string) string {
	r, err := m.reg.Resolve(name)
	if err != nil {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, r.Family())
}

func windowTitle(title string, paused bool) string {
	if paused {
		return "⏸ " + title + " - canvis"
	}
	return "▶ " + title + " - canvis"
}
