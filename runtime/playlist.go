package runtime

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/etherlabsio/go-m3u8/m3u8"
)

// loadPlaylist loads a playlist configuration value into the player.
// A list of entries is loaded directly; an M3U8 manifest path is parsed
// and its segments loaded one by one.
func (h *mpvHandle) loadPlaylist(value interface{}) error {
	switch v := value.(type) {
	case []string:
		return h.loadEntries(v)

	case []interface{}:
		var entries []string

		for _, entry := range v {
			uri, ok := entry.(string)
			if !ok {
				continue
			}

			entries = append(entries, uri)
		}

		return h.loadEntries(entries)

	case string:
		if filepath.Ext(v) != ".m3u8" {
			return h.loadEntries([]string{v})
		}

		return h.loadManifest(v)
	}

	return fmt.Errorf("MPV: Unsupported playlist value")
}

// loadEntries appends the provided entries to the player's queue.
func (h *mpvHandle) loadEntries(entries []string) error {
	if len(entries) == 0 {
		return fmt.Errorf("MPV: No playlist entries were provided")
	}

	for _, entry := range entries {
		if _, err := h.Call("loadfile", entry, "append-play"); err != nil {
			return fmt.Errorf("MPV: Unable to load %s", entry)
		}
	}

	return nil
}

// loadManifest parses an M3U8 manifest and appends its segments to the
// player's queue.
func (h *mpvHandle) loadManifest(path string) error {
	playlist, err := m3u8.ReadFile(path)
	if err != nil {
		return fmt.Errorf("MPV: Unable to parse playlist %s", path)
	}

	var added int

	for _, item := range playlist.Items {
		segment, ok := item.(*m3u8.SegmentItem)
		if !ok {
			continue
		}

		uri := segment.Segment
		if uri == "" || strings.HasPrefix(uri, "#") {
			continue
		}

		if _, err := h.Call("loadfile", uri, "append-play"); err != nil {
			return fmt.Errorf("MPV: Unable to load %s", uri)
		}

		added++
	}

	if added == 0 {
		return fmt.Errorf("MPV: No entries were added from %s", path)
	}

	return nil
}
