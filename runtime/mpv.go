package runtime

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/darkhz/mpvipc"
	"github.com/darkhz/playerview/platform"
	"github.com/darkhz/playerview/resolver"
)

// MPV describes the mpv player runtime.
type MPV struct {
	execpath string
	socket   string
	retries  int
}

// NewMPV returns an mpv runtime. Each player instance launches its own
// mpv process, reachable over a socket derived from the base socket path
// and the instance's mount identifier.
func NewMPV(execpath, socket string, retries int) *MPV {
	return &MPV{
		execpath: execpath,
		socket:   socket,
		retries:  retries,
	}
}

// Name returns the runtime's registry name.
func (m *MPV) Name() string {
	return "mpv"
}

// Setup launches a player bound to the provided mount identifier and
// applies the effective configuration to it.
func (m *MPV) Setup(id string, config map[string]interface{}) (Handle, error) {
	socket := platform.Socket(m.socket + "-" + id)

	conn, err := m.connect(socket)
	if err != nil {
		return nil, err
	}

	handle := &mpvHandle{
		socket:     socket,
		events:     newEmitter(),
		Connection: conn,
	}

	go handle.listen()

	if err := handle.apply(config); err != nil {
		handle.Remove()
		return nil, err
	}

	return handle, nil
}

// connect launches mpv and opens a connection via the provided socket.
func (m *MPV) connect(socket string) (*mpvipc.Connection, error) {
	command := exec.Command(
		m.execpath,
		"--idle",
		"--keep-open",
		"--no-terminal",
		"--really-quiet",
		"--no-input-terminal",
		"--input-ipc-server="+socket,
	)

	if err := command.Start(); err != nil {
		return nil, fmt.Errorf("MPV: Could not start")
	}

	conn := mpvipc.NewConnection(socket)
	for i := 0; i <= m.retries; i++ {
		if err := conn.Open(); err != nil {
			time.Sleep(1 * time.Second)
			continue
		}

		return conn, nil
	}

	return nil, fmt.Errorf("MPV: Could not connect to socket")
}

// mpvHandle describes a player instance backed by an mpv process.
type mpvHandle struct {
	socket string
	events *emitter

	*mpvipc.Connection
}

// On registers a handler for the provided event name. The reserved
// name EventAll receives every event.
func (h *mpvHandle) On(event string, fn EventFunc) {
	h.events.on(event, fn, false)
}

// Once registers a single-shot handler for the provided event name.
func (h *mpvHandle) Once(event string, fn EventFunc) {
	h.events.on(event, fn, true)
}

// Off removes the handler registered for the provided event name.
func (h *mpvHandle) Off(event string, fn EventFunc) {
	h.events.off(event, fn)
}

// OffAll removes every registered handler.
func (h *mpvHandle) OffAll() {
	h.events.off("", nil)
}

// Remove destroys the player. Removing an already destroyed player
// is a no-op.
func (h *mpvHandle) Remove() {
	if h.Closed() {
		return
	}

	h.Call("quit")
	os.Remove(h.socket)
}

// Closed returns whether the player has been destroyed.
func (h *mpvHandle) Closed() bool {
	return h.Connection == nil || h.Connection.IsClosed()
}

// Call sends a command to the player.
func (h *mpvHandle) Call(args ...interface{}) (interface{}, error) {
	if h.Closed() {
		return nil, fmt.Errorf("MPV: Connection closed")
	}

	return h.Connection.Call(args...)
}

// Get gets a property from the player.
func (h *mpvHandle) Get(prop string) (interface{}, error) {
	if h.Closed() {
		return nil, fmt.Errorf("MPV: Connection closed")
	}

	return h.Connection.Get(prop)
}

// Set sets a property in the player.
func (h *mpvHandle) Set(prop string, value interface{}) error {
	if h.Closed() {
		return fmt.Errorf("MPV: Connection closed")
	}

	return h.Connection.Set(prop, value)
}

// apply applies the effective configuration to the player.
func (h *mpvHandle) apply(config map[string]interface{}) error {
	if value, ok := config["mute"]; ok {
		var mute bool

		if err := resolver.Store(value, &mute); err == nil {
			h.Set("mute", mute)
		}
	}

	if value, ok := config["volume"]; ok {
		var volume float64

		if err := resolver.Store(value, &volume); err == nil {
			h.Set("volume", volume)
		}
	}

	if value, ok := config["speed"]; ok {
		var speed float64

		if err := resolver.Store(value, &speed); err == nil {
			h.Set("speed", speed)
		}
	}

	if value, ok := config["repeat"]; ok {
		var repeat bool

		if err := resolver.Store(value, &repeat); err == nil && repeat {
			h.Set("loop-playlist", "inf")
		}
	}

	if value, ok := config["title"].(string); ok && value != "" {
		h.Set("force-media-title", value)
	}

	if value, ok := config["file"].(string); ok && value != "" {
		if _, err := h.Call("loadfile", value, "append-play"); err != nil {
			return fmt.Errorf("MPV: Unable to load %s", value)
		}
	}

	if value, ok := config["playlist"]; ok {
		if err := h.loadPlaylist(value); err != nil {
			return err
		}
	}

	if value, ok := config["autostart"]; ok {
		var autostart bool

		if err := resolver.Store(value, &autostart); err == nil && !autostart {
			h.Set("pause", "yes")
		}
	}

	return nil
}

// listen listens for mpv events and emits them under the player
// event vocabulary.
func (h *mpvHandle) listen() {
	events, stopListening := h.Connection.NewEventListener()

	defer h.Connection.Close()
	defer func() { stopListening <- struct{}{} }()

	h.Call("observe_property", 1, "pause")
	h.Call("observe_property", 2, "mute")
	h.Call("observe_property", 3, "volume")
	h.Call("observe_property", 4, "time-pos")

	for event := range events {
		switch event.Name {
		case "property-change":
			h.propertyChange(event)

		case "file-loaded":
			payload := make(map[string]interface{})

			if value, err := h.Get("file-size"); err == nil {
				var size float64

				h.store(value, &size)
				payload["size"] = int(size)
			}

			if value, err := h.Get("duration"); err == nil {
				var duration float64

				h.store(value, &duration)
				payload["duration"] = duration
			}

			h.events.emit("ready", payload)

		case "start-file":
			payload := make(map[string]interface{})

			if len(event.ExtraData) > 0 {
				var id float64

				h.store(event.ExtraData["playlist_entry_id"], &id)
				payload["item"] = int(id)
			}

			h.events.emit("playlistItem", payload)

		case "end-file":
			var errorText string

			if len(event.ExtraData) > 0 {
				h.store(event.ExtraData["file_error"], &errorText)
			}

			if errorText != "" {
				h.events.emit("error", map[string]interface{}{
					"message": errorText,
				})

				continue
			}

			h.events.emit("complete", nil)

		case "idle":
			h.events.emit("idle", nil)
		}
	}
}

// propertyChange emits events for the observed player properties.
func (h *mpvHandle) propertyChange(event *mpvipc.Event) {
	switch event.ID {
	case 1:
		var paused bool

		h.store(event.Data, &paused)

		name := "play"
		if paused {
			name = "pause"
		}

		h.events.emit(name, map[string]interface{}{
			"paused": paused,
		})

	case 2:
		var muted bool

		h.store(event.Data, &muted)

		h.events.emit("mute", map[string]interface{}{
			"mute": muted,
		})

	case 3:
		var volume float64

		h.store(event.Data, &volume)

		h.events.emit("volume", map[string]interface{}{
			"volume": volume,
		})

	case 4:
		var position float64

		h.store(event.Data, &position)

		h.events.emit("time", map[string]interface{}{
			"position": position,
		})
	}
}

// store applies the property value into the given data container.
func (h *mpvHandle) store(prop, apply interface{}) {
	resolver.Store(prop, apply)
}
