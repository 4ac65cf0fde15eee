package runtime

import "testing"

func TestEmitterFanout(t *testing.T) {
	e := newEmitter()

	var named, all int

	e.on("play", func(event string, payload map[string]interface{}) {
		named++
	}, false)
	e.on(EventAll, func(event string, payload map[string]interface{}) {
		all++

		if event != "play" && event != "pause" {
			t.Errorf("aggregate got event %q", event)
		}
	}, false)

	e.emit("play", nil)
	e.emit("pause", nil)

	if named != 1 {
		t.Errorf("named handler ran %d times, want 1", named)
	}
	if all != 2 {
		t.Errorf("aggregate handler ran %d times, want 2", all)
	}
}

func TestEmitterOnce(t *testing.T) {
	e := newEmitter()

	var calls int

	e.on(EventAll, func(event string, payload map[string]interface{}) {}, false)
	e.on("complete", func(event string, payload map[string]interface{}) {
		calls++
	}, true)

	e.emit("complete", nil)
	e.emit("complete", nil)

	if calls != 1 {
		t.Errorf("once handler ran %d times, want 1", calls)
	}
}

func TestEmitterOff(t *testing.T) {
	e := newEmitter()

	var first, second int

	one := EventFunc(func(event string, payload map[string]interface{}) { first++ })
	two := EventFunc(func(event string, payload map[string]interface{}) { second++ })

	e.on("play", one, false)
	e.on("play", two, false)
	e.on(EventAll, func(event string, payload map[string]interface{}) {}, false)

	e.off("play", one)
	e.emit("play", nil)

	if first != 0 {
		t.Error("removed handler still ran")
	}
	if second != 1 {
		t.Errorf("remaining handler ran %d times, want 1", second)
	}

	e.off("play", nil)
	e.emit("play", nil)

	if second != 1 {
		t.Error("handler ran after removing every handler for the event")
	}
}

func TestEmitterOffAll(t *testing.T) {
	e := newEmitter()

	var calls int

	fn := EventFunc(func(event string, payload map[string]interface{}) { calls++ })

	e.on("play", fn, false)
	e.on(EventAll, fn, false)

	e.off("", nil)
	e.emit("play", nil)

	if calls != 0 {
		t.Errorf("handlers ran %d times after detaching everything", calls)
	}
}

func TestEmitterPendingReplay(t *testing.T) {
	e := newEmitter()

	e.emit("ready", map[string]interface{}{"n": 1})
	e.emit("play", map[string]interface{}{"n": 2})

	var replayed []string

	e.on(EventAll, func(event string, payload map[string]interface{}) {
		replayed = append(replayed, event)
	}, false)

	if len(replayed) != 2 || replayed[0] != "ready" || replayed[1] != "play" {
		t.Errorf("replayed events = %v, want [ready play]", replayed)
	}

	e.emit("pause", nil)

	if len(replayed) != 3 {
		t.Errorf("aggregate handler ran %d times, want 3", len(replayed))
	}
}

func TestEmitterPendingLimit(t *testing.T) {
	e := newEmitter()

	for i := 0; i < pendingLimit+1; i++ {
		e.emit("time", map[string]interface{}{"n": i})
	}

	first := -1

	e.on(EventAll, func(event string, payload map[string]interface{}) {
		if first == -1 {
			first = payload["n"].(int)
		}
	}, false)

	if first != 1 {
		t.Errorf("first replayed event n = %d, want 1 (oldest discarded)", first)
	}
}
