// Package prefs remembers the last-used visualizer settings in a small SQLite
// key/value table.
package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"github.com/olivier-w/canvis/internal/config"
	"github.com/olivier-w/canvis/internal/logx"
)

const (
	KeyVisualizer  = "visualizer.visualizerType"
	KeyFFTSize     = "visualizer.fftBand"
	KeyWidth       = "visualizer.canvasWidth"
	KeyHeight      = "visualizer.canvasHeight"
	KeyScale       = "visualizer.animationScale"
	KeyFPS         = "visualizer.fps"
	KeyColorMode   = "visualizer.foregroundColorType"
	KeyForeground  = "visualizer.foregroundColor"
	KeyBackground  = "visualizer.backgroundColor"
	KeyTransparent = "visualizer.transparentBackground"
)

type SQLiteClient struct {
	db *sql.DB
}

// DefaultPath is prefs.db under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "canvis", "prefs.db"), nil
}

func NewSQLiteClient(dbPath string) (*SQLiteClient, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating prefs directory: %w", err)
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening prefs database: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating prefs table: %w", err)
	}
	return &SQLiteClient{db: db}, nil
}

func (c *SQLiteClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
    CREATE TABLE IF NOT EXISTS prefs (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );
    `)
	return err
}

// Get returns the stored value and whether the key exists.
func (c *SQLiteClient) Get(key string) (string, bool, error) {
	var v string
	err := c.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return v, true, nil
}

func (c *SQLiteClient) Set(key, value string) error {
	_, err := c.db.Exec("INSERT INTO prefs (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", key, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// All returns every stored pair.
func (c *SQLiteClient) All() (map[string]string, error) {
	rows, err := c.db.Query("SELECT key, value FROM prefs")
	if err != nil {
		return nil, fmt.Errorf("listing prefs: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning prefs: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Save writes the remembered fields of s.
func (c *SQLiteClient) Save(s config.Settings) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("saving prefs: %w", err)
	}
	pairs := [][2]string{
		{KeyVisualizer, s.Visualizer},
		{KeyFFTSize, strconv.Itoa(s.FFTSize)},
		{KeyWidth, strconv.Itoa(s.Width)},
		{KeyHeight, strconv.Itoa(s.Height)},
		{KeyScale, strconv.FormatFloat(s.Scale, 'g', -1, 64)},
		{KeyFPS, strconv.Itoa(s.FPS)},
		{KeyColorMode, s.ColorMode},
		{KeyForeground, s.Foreground},
		{KeyBackground, s.Background},
		{KeyTransparent, strconv.FormatBool(s.TransparentBackground)},
	}
	for _, kv := range pairs {
		if _, err := tx.Exec("INSERT INTO prefs (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", kv[0], kv[1]); err != nil {
			tx.Rollback()
			return fmt.Errorf("writing %s: %w", kv[0], err)
		}
	}
	return tx.Commit()
}

// Apply overlays stored values onto s. Values that do not parse, or that
// would make s invalid, are skipped with a warning.
func (c *SQLiteClient) Apply(s *config.Settings) error {
	stored, err := c.All()
	if err != nil {
		return err
	}
	for key, raw := range stored {
		next := *s
		if !assign(&next, key, raw) {
			continue
		}
		if err := next.Validate(); err != nil {
			logx.Warn("Ignoring stored %s=%q: %v", key, raw, err)
			continue
		}
		*s = next
	}
	return nil
}

func assign(s *config.Settings, key, raw string) bool {
	atoi := func(dst *int) bool {
		v, err := strconv.Atoi(raw)
		if err != nil {
			logx.Warn("Ignoring stored %s=%q: %v", key, raw, err)
			return false
		}
		*dst = v
		return true
	}
	switch key {
	case KeyVisualizer:
		s.Visualizer = raw
	case KeyFFTSize:
		return atoi(&s.FFTSize)
	case KeyWidth:
		return atoi(&s.Width)
	case KeyHeight:
		return atoi(&s.Height)
	case KeyFPS:
		return atoi(&s.FPS)
	case KeyScale:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			logx.Warn("Ignoring stored %s=%q: %v", key, raw, err)
			return false
		}
		s.Scale = v
	case KeyColorMode:
		s.ColorMode = raw
	case KeyForeground:
		s.Foreground = raw
	case KeyBackground:
		s.Background = raw
	case KeyTransparent:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			logx.Warn("Ignoring stored %s=%q: %v", key, raw, err)
			return false
		}
		s.TransparentBackground = v
	default:
		return false
	}
	return true
}
