package utils

import (
	"reflect"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration int64
		want     string
	}{
		{0, "00:00"},
		{9, "00:09"},
		{61, "01:01"},
		{3600, "01:00:00"},
		{3725, "01:02:05"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.duration); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.duration, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		num  int
		want string
	}{
		{999, "999"},
		{1500, "1.5K"},
		{1100000, "1.1M"},
		{2500000000, "2.5B"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.num); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.num, got, tt.want)
		}
	}
}

func TestHandlerName(t *testing.T) {
	tests := []struct {
		prefix, event string
		want          string
	}{
		{"on", "play", "onPlay"},
		{"once", "playlistComplete", "oncePlaylistComplete"},
		{"on", "all", "onAll"},
		{"on", "", ""},
	}

	for _, tt := range tests {
		if got := HandlerName(tt.prefix, tt.event); got != tt.want {
			t.Errorf("HandlerName(%q, %q) = %q, want %q",
				tt.prefix, tt.event, got, tt.want)
		}
	}
}

func TestDeduplicate(t *testing.T) {
	got := Deduplicate([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Deduplicate = %v, want %v", got, want)
	}
}

func TestIsValidURL(t *testing.T) {
	if _, err := IsValidURL("https://example.com/player.bin"); err != nil {
		t.Errorf("valid URL rejected: %v", err)
	}

	if _, err := IsValidURL("not a url"); err == nil {
		t.Error("invalid URL accepted")
	}
}
