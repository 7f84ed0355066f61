package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/olivier-w/canvis/internal/config"
	"github.com/olivier-w/canvis/internal/logx"
	"github.com/olivier-w/canvis/internal/media"
	"github.com/olivier-w/canvis/internal/player"
	"github.com/olivier-w/canvis/internal/prefs"
	"github.com/olivier-w/canvis/internal/scheduler"
	"github.com/olivier-w/canvis/internal/surface"
	"github.com/olivier-w/canvis/internal/ui"
	"github.com/olivier-w/canvis/internal/video"
	"github.com/olivier-w/canvis/internal/visualizer"
)

const (
	toneRate     = 44100
	toneDuration = 30 * time.Second
)

func main() {
	fs := flag.NewFlagSet("canvis", flag.ExitOnError)
	opts := registerFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: canvis [flags] [file]\n\nPlays %s files and draws them.\n\n", media.SupportedExtsList())
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	reg := visualizer.Default()
	if opts.list {
		writeCatalog(os.Stdout, reg)
		return
	}

	if err := run(fs, opts, reg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(fs *flag.FlagSet, opts *flagValues, reg *visualizer.Registry) error {
	settings := config.Default()
	if opts.configFile != "" {
		if err := settings.LoadFromFile(opts.configFile); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	} else {
		settings.TryLoadDefault()
	}

	headless := opts.exportDir != ""
	if !headless && !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal; use -export to render frames without the TUI")
	}

	closeLog, err := setupLogging(settings, opts, headless)
	if err != nil {
		return err
	}
	defer closeLog()

	db := openPrefs(settings, opts)
	if db != nil {
		defer db.Close()
		if err := db.Apply(&settings); err != nil {
			logx.Warn("Reading preferences: %v", err)
		}
	}

	applyFlags(&settings, fs, opts)
	if _, err := reg.Resolve(settings.Visualizer); err != nil {
		return err
	}
	cfg, err := config.NewStore(settings)
	if err != nil {
		return err
	}
	if db != nil {
		if err := db.Save(cfg.Settings()); err != nil {
			logx.Warn("Saving preferences: %v", err)
		}
	}

	path, cleanup, err := pickInput(fs.Arg(0), opts.toneHz, headless)
	if err != nil || path == "" {
		return err
	}
	defer cleanup()

	if headless {
		n, err := runExport(path, cfg, reg, opts.exportDir, opts.frames)
		if err != nil {
			return err
		}
		logx.Info("Wrote %d frames to %s", n, opts.exportDir)
		return nil
	}

	var saver ui.Prefs
	if db != nil {
		saver = db
	}
	return runTUI(path, cfg, reg, saver)
}

// setupLogging sends logs to the log file if one is configured. Without one
// the TUI discards them so they do not tear the screen.
func setupLogging(settings config.Settings, opts *flagValues, headless bool) (func(), error) {
	level := logx.ParseLevel(settings.LogLevel)
	logFile := settings.LogFile
	if opts.logFile != "" {
		logFile = opts.logFile
	}
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "canvis")
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		logx.SetDefault(logx.New(f, level))
		return func() { f.Close() }, nil
	}
	if headless {
		logx.SetDefault(logx.New(os.Stderr, level))
	} else {
		logx.SetDefault(logx.New(io.Discard, level))
	}
	return func() {}, nil
}

func openPrefs(settings config.Settings, opts *flagValues) *prefs.SQLiteClient {
	if opts.noPrefs {
		return nil
	}
	path := settings.PrefsPath
	if opts.prefsPath != "" {
		path = opts.prefsPath
	}
	if path == "" {
		p, err := prefs.DefaultPath()
		if err != nil {
			logx.Warn("No preferences location: %v", err)
			return nil
		}
		path = p
	}
	db, err := prefs.NewSQLiteClient(path)
	if err != nil {
		logx.Warn("Preferences disabled: %v", err)
		return nil
	}
	return db
}

// pickInput resolves the audio file to play: the argument, a generated tone,
// or a choice from the file browser. An empty path means the user cancelled.
func pickInput(arg string, toneHz float64, headless bool) (string, func(), error) {
	noop := func() {}
	if arg == "" && toneHz == 0 {
		if headless {
			return "", noop, fmt.Errorf("-export needs a file or -tone")
		}
		browser := ui.NewBrowser()
		if browser.HasError() {
			return "", noop, browser.Error()
		}
		finalModel, err := tea.NewProgram(browser, tea.WithAltScreen()).Run()
		if err != nil {
			return "", noop, err
		}
		bm, ok := finalModel.(ui.BrowserModel)
		if !ok {
			return "", noop, fmt.Errorf("unexpected model type from browser")
		}
		result := bm.Result()
		if result.Cancelled {
			return "", noop, nil
		}
		arg, toneHz = result.Path, result.ToneHz
	}

	if arg == "" {
		return makeTone(toneHz)
	}

	info, err := os.Stat(arg)
	if err != nil {
		return "", noop, err
	}
	if info.IsDir() {
		return "", noop, fmt.Errorf("%s is a directory", arg)
	}
	if !media.IsAudioFile(arg) {
		return "", noop, fmt.Errorf("unsupported format %s (supported: %s)", filepath.Ext(arg), media.SupportedExtsList())
	}
	return arg, noop, nil
}

func makeTone(hz float64) (string, func(), error) {
	dir, err := os.MkdirTemp("", "canvis-tone-")
	if err != nil {
		return "", func() {}, err
	}
	cleanup := func() { os.RemoveAll(dir) }
	path := filepath.Join(dir, fmt.Sprintf("tone %g Hz.wav", hz))
	if err := player.WriteTone(path, hz, toneRate, toneDuration); err != nil {
		cleanup()
		return "", func() {}, err
	}
	return path, cleanup, nil
}

func runTUI(path string, store *config.Store, reg *visualizer.Registry, saver ui.Prefs) error {
	meta := player.ReadMetadata(path)
	p, err := player.New(path)
	if err != nil {
		return fmt.Errorf("creating player: %w", err)
	}
	defer p.Close()

	cfg := store.Snapshot()
	canvas := surface.NewCanvas(cfg.Width, cfg.Height)
	host := scheduler.NewTimerHost(func() int { return store.Snapshot().FPS })
	sched := scheduler.New(reg, store, canvas, host)
	pump := ui.NewFramePump(video.NewRenderer())
	sched.OnFrame(pump.OnFrame)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Bind(ctx, p.Events(), p)

	model := ui.New(ui.Session{
		Player:    p,
		Metadata:  meta,
		Scheduler: sched,
		Store:     store,
		Registry:  reg,
		Pump:      pump,
		Prefs:     saver,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	sched.Stop()
	return err
}
