package runtime

import (
	"reflect"
	"sync"

	"github.com/gammazero/deque"
)

// pendingLimit is the maximum number of events buffered before an
// aggregate handler attaches. Older events are discarded first.
const pendingLimit = 64

// emitter fans player events out to the registered handlers.
type emitter struct {
	handlers map[string][]*subscription
	pending  *deque.Deque[pendingEvent]

	mutex sync.Mutex
}

// subscription stores a registered event handler.
type subscription struct {
	fn   EventFunc
	once bool
}

type pendingEvent struct {
	name    string
	payload map[string]interface{}
}

func newEmitter() *emitter {
	return &emitter{
		handlers: make(map[string][]*subscription),
		pending:  deque.New[pendingEvent](),
	}
}

// on registers a handler for the provided event name. Attaching the
// first aggregate handler replays the events buffered so far.
func (e *emitter) on(event string, fn EventFunc, once bool) {
	if fn == nil {
		return
	}

	e.mutex.Lock()

	e.handlers[event] = append(e.handlers[event], &subscription{
		fn:   fn,
		once: once,
	})

	var replay []pendingEvent
	if event == EventAll {
		for e.pending.Len() > 0 {
			replay = append(replay, e.pending.PopFront())
		}
	}

	e.mutex.Unlock()

	for _, p := range replay {
		fn(p.name, p.payload)
	}
}

// off removes the handler registered for the provided event name.
// An empty event name removes the handler from every event; a nil
// handler removes every handler for the event.
func (e *emitter) off(event string, fn EventFunc) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if event == "" && fn == nil {
		e.handlers = make(map[string][]*subscription)
		return
	}

	for name, subs := range e.handlers {
		if event != "" && name != event {
			continue
		}

		kept := subs[:0]
		for _, sub := range subs {
			if fn == nil || funcID(sub.fn) == funcID(fn) {
				continue
			}

			kept = append(kept, sub)
		}

		e.handlers[name] = kept
	}
}

// emit delivers an event to the handlers registered under its name and
// to the aggregate handlers. Events arriving before any aggregate
// handler has attached are buffered.
func (e *emitter) emit(event string, payload map[string]interface{}) {
	e.mutex.Lock()

	fns := e.collect(event)

	if len(e.handlers[EventAll]) == 0 {
		if e.pending.Len() >= pendingLimit {
			e.pending.PopFront()
		}

		e.pending.PushBack(pendingEvent{name: event, payload: payload})
	} else {
		fns = append(fns, e.collect(EventAll)...)
	}

	e.mutex.Unlock()

	for _, fn := range fns {
		fn(event, payload)
	}
}

// collect gathers the handlers for an event name and drops the
// single-shot ones from the table. Callers must hold the mutex.
func (e *emitter) collect(event string) []EventFunc {
	subs, ok := e.handlers[event]
	if !ok {
		return nil
	}

	var fns []EventFunc

	kept := subs[:0]
	for _, sub := range subs {
		fns = append(fns, sub.fn)

		if !sub.once {
			kept = append(kept, sub)
		}
	}

	e.handlers[event] = kept

	return fns
}

// funcID returns the identity of a handler function.
func funcID(fn EventFunc) uintptr {
	return reflect.ValueOf(fn).Pointer()
}
