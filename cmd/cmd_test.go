package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestPlaylistEntries(t *testing.T) {
	tests := []struct {
		value string
		want  interface{}
	}{
		{"media.m3u8", "media.m3u8"},
		{"one.mp3,two.mp3", []string{"one.mp3", "two.mp3"}},
		{"one.mp3, two.mp3, one.mp3", []string{"one.mp3", "two.mp3"}},
	}

	for _, tt := range tests {
		if got := playlistEntries(tt.value); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("playlistEntries(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestReadyMessage(t *testing.T) {
	if got := readyMessage(nil); got != "Media is ready" {
		t.Errorf("readyMessage = %q", got)
	}

	got := readyMessage(map[string]interface{}{"size": 1500000})
	if got != "Media is ready (1.5MB)" {
		t.Errorf("readyMessage = %q", got)
	}
}

func TestLoadMessage(t *testing.T) {
	if got := loadMessage("mpv", "mpv"); got != "Loading mpv" {
		t.Errorf("loadMessage = %q", got)
	}

	got := loadMessage("mpv", "https://builds.example.com/mpv")
	if got != "Loading mpv from builds.example.com" {
		t.Errorf("loadMessage = %q", got)
	}
}

func TestConfigProp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player.json")
	if err := os.WriteFile(path, []byte(`{"volume": 50, "mute": true}`), 0600); err != nil {
		t.Fatal(err)
	}

	options, err := configProp(path)
	if err != nil {
		t.Fatalf("configProp: %v", err)
	}

	if len(options) != 2 || options["mute"] != true {
		t.Errorf("options = %v", options)
	}

	if _, err := configProp(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("configProp succeeded on a missing file")
	}
}
