// Package logx is a small levelled logger on top of the standard log package.
package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// ParseLevel maps a level name to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

type Logger struct {
	mu    sync.Mutex
	l     *log.Logger
	lv    Level
	color bool
}

var (
	std   = New(os.Stderr, INFO)
	stdMu sync.RWMutex
)

// New creates a logger writing to w. Level tags are coloured only when w is a
// terminal and NO_COLOR is unset.
func New(w io.Writer, level Level) *Logger {
	useColor := false
	if f, ok := w.(*os.File); ok && f == os.Stderr {
		useColor = !color.NoColor
	}
	return &Logger{l: log.New(w, "", 0), lv: level, color: useColor}
}

// Default returns the process-wide logger.
func Default() *Logger {
	stdMu.RLock()
	defer stdMu.RUnlock()
	return std
}

// SetDefault replaces the process-wide logger.
func SetDefault(lg *Logger) {
	stdMu.Lock()
	std = lg
	stdMu.Unlock()
}

func (lg *Logger) SetLevel(level Level) {
	lg.mu.Lock()
	lg.lv = level
	lg.mu.Unlock()
}

var tagColors = map[Level]*color.Color{
	DEBUG: color.New(color.FgHiBlack),
	INFO:  color.New(color.FgCyan),
	WARN:  color.New(color.FgYellow),
	ERROR: color.New(color.FgRed, color.Bold),
}

var tagNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

func (lg *Logger) log(level Level, msg string, args ...any) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	if level < lg.lv {
		return
	}
	tag := tagNames[level]
	if lg.color {
		tag = tagColors[level].Sprint(tag)
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	lg.l.Printf("%s [%s] %s", ts, tag, fmt.Sprintf(msg, args...))
}

func (lg *Logger) Debug(m string, a ...any) { lg.log(DEBUG, m, a...) }
func (lg *Logger) Info(m string, a ...any)  { lg.log(INFO, m, a...) }
func (lg *Logger) Warn(m string, a ...any)  { lg.log(WARN, m, a...) }
func (lg *Logger) Error(m string, a ...any) { lg.log(ERROR, m, a...) }

func Debug(m string, a ...any) { Default().Debug(m, a...) }
func Info(m string, a ...any)  { Default().Info(m, a...) }
func Warn(m string, a ...any)  { Default().Warn(m, a...) }
func Error(m string, a ...any) { Default().Error(m, a...) }
