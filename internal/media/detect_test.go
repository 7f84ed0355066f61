package media

import (
	"strings"
	"testing"
)

func TestIsSupportedExtIgnoresCase(t *testing.T) {
	for _, ext := range []string{".mp3", ".WAV", ".Flac", ".ogg"} {
		if !IsSupportedExt(ext) {
			t.Fatalf("expected %s to be supported", ext)
		}
	}
	for _, ext := range []string{".aac", ".m4a", ".m3u", ""} {
		if IsSupportedExt(ext) {
			t.Fatalf("expected %s to be rejected", ext)
		}
	}
}

func TestIsAudioFile(t *testing.T) {
	if !IsAudioFile("/music/song.FLAC") {
		t.Fatal("expected flac path to be an audio file")
	}
	if IsAudioFile("notes.txt") {
		t.Fatal("expected txt path to be rejected")
	}
}

func TestSupportedExtsListMatchesSet(t *testing.T) {
	list := SupportedExtsList()
	for ext := range audioExts {
		if !strings.Contains(list, ext) {
			t.Fatalf("expected supported ext list to include %s, got %q", ext, list)
		}
	}
}
