package player

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Metadata holds song information shown next to the canvas.
type Metadata struct {
	Title  string
	Artist string
	Album  string
	Format string
}

// Label is "Artist - Title", or just the title.
func (m Metadata) Label() string {
	if m.Artist == "" {
		return m.Title
	}
	return m.Artist + " - " + m.Title
}

// ReadMetadata reads ID3v2 tags from MP3 files and falls back to the file
// name for everything else.
func ReadMetadata(path string) Metadata {
	ext := strings.ToLower(filepath.Ext(path))
	m := Metadata{Format: strings.TrimPrefix(ext, ".")}

	if ext == ".mp3" {
		if tag, err := id3v2.Open(path, id3v2.Options{Parse: true}); err == nil {
			m.Title = strings.TrimSpace(tag.Title())
			m.Artist = strings.TrimSpace(tag.Artist())
			m.Album = strings.TrimSpace(tag.Album())
			tag.Close()
		}
	}
	if m.Title == "" {
		m.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m
}
