package component

import (
	"reflect"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/darkhz/playerview/runtime"
)

// Props holds the named properties supplied by a component's owner.
// The bag is replaced wholesale on every render.
type Props map[string]interface{}

// EventCallback is the shape a fire-every or fire-once handler
// property value must have to be honored.
type EventCallback func(payload map[string]interface{})

// AllCallback is the shape the catch-all handler property value must
// have. It receives the event's name along with the payload.
type AllCallback func(event string, payload map[string]interface{})

// DispatchFunc fans an incoming player event out to the matching
// handler properties.
type DispatchFunc func(event string, payload map[string]interface{})

// Kind classifies a handler property name.
type Kind int

// The different kinds of handler properties.
const (
	KindNone Kind = iota
	KindEvery
	KindOnce
	KindAll
)

// Handler is a classified handler property.
type Handler struct {
	Kind  Kind
	Event string

	Callback EventCallback
	CatchAll AllCallback
}

// Classify matches a property name against the handler naming rules.
// "on" followed by a capitalized event name is a fire-every handler,
// "once" followed by a capitalized event name is a fire-once handler,
// and the fire-every handler whose extracted name is the reserved
// token "all" is the catch-all. The extracted event name has its first
// letter lower-cased.
func Classify(name string) (Kind, string) {
	var kind Kind
	var rest string

	switch {
	case strings.HasPrefix(name, "once"):
		kind, rest = KindOnce, name[len("once"):]

	case strings.HasPrefix(name, "on"):
		kind, rest = KindEvery, name[len("on"):]

	default:
		return KindNone, ""
	}

	first, size := utf8.DecodeRuneInString(rest)
	if rest == "" || !unicode.IsUpper(first) {
		return KindNone, ""
	}

	event := string(unicode.ToLower(first)) + rest[size:]
	if kind == KindEvery && event == runtime.EventAll {
		kind = KindAll
	}

	return kind, event
}

// classifyProps extracts the handler records from a property bag, in
// sorted property name order. Properties whose values do not have the
// expected callback shape are skipped silently.
func classifyProps(props Props) []Handler {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var handlers []Handler

	for _, name := range names {
		kind, event := Classify(name)
		if kind == KindNone {
			continue
		}

		h := Handler{Kind: kind, Event: event}

		switch kind {
		case KindAll:
			h.CatchAll = allCallback(props[name])
			if h.CatchAll == nil {
				continue
			}

		default:
			h.Callback = eventCallback(props[name])
			if h.Callback == nil {
				continue
			}
		}

		handlers = append(handlers, h)
	}

	return handlers
}

// eventCallback settles a property value into the fire-every and
// fire-once callback shape.
func eventCallback(value interface{}) EventCallback {
	switch fn := value.(type) {
	case EventCallback:
		return fn

	case func(payload map[string]interface{}):
		return fn
	}

	return nil
}

// allCallback settles a property value into the catch-all callback shape.
func allCallback(value interface{}) AllCallback {
	switch fn := value.(type) {
	case AllCallback:
		return fn

	case func(event string, payload map[string]interface{}):
		return fn
	}

	return nil
}

// BuildDispatch builds the single dispatch function that fans incoming
// player events out to the fire-every and catch-all handler properties.
// Fire-every handlers run when the event name matches the name
// extracted from their property; catch-all handlers run for every
// event, the empty event name included.
func BuildDispatch(props Props) DispatchFunc {
	handlers := classifyProps(props)

	return func(event string, payload map[string]interface{}) {
		for _, h := range handlers {
			switch h.Kind {
			case KindEvery:
				if h.Event == event {
					h.Callback(payload)
				}

			case KindAll:
				h.CatchAll(event, payload)
			}
		}
	}
}

// AttachOnce registers every fire-once handler property directly on
// the player's single-shot subscription API. Once-handlers are bound
// exactly once, when the player is created, and are never revisited by
// the update protocol.
func AttachOnce(props Props, handle runtime.Handle) {
	if handle == nil {
		return
	}

	for _, h := range classifyProps(props) {
		if h.Kind != KindOnce {
			continue
		}

		fn := h.Callback
		handle.Once(h.Event, func(_ string, payload map[string]interface{}) {
			fn(payload)
		})
	}
}

// InstallAggregate builds the dispatch function and registers it on
// the player's aggregate event channel.
func InstallAggregate(props Props, handle runtime.Handle) DispatchFunc {
	dispatch := BuildDispatch(props)

	if handle != nil {
		handle.On(runtime.EventAll, runtime.EventFunc(dispatch))
	}

	return dispatch
}

// EventsChanged reports whether the fire-every handler properties
// differ between two property bags. The property names matching the
// fire-every pattern are sorted and compared positionally, first by
// name and then by callback identity. Equal-length bags with reordered
// names still register as a change; the comparison over-triggers,
// never under-triggers.
func EventsChanged(old, next Props) bool {
	oldNames := everyNames(old)
	nextNames := everyNames(next)

	if len(oldNames) != len(nextNames) {
		return true
	}

	for i, name := range oldNames {
		if name != nextNames[i] {
			return true
		}

		if callbackID(old[name]) != callbackID(next[name]) {
			return true
		}
	}

	return false
}

// RefreshAggregate swaps the dispatch function attached to the
// aggregate channel. The current function is detached first; a nil
// player handle or a nil current function is tolerated as a no-op.
// Exactly one dispatch function is attached once it returns, even when
// no event-bearing properties remain.
func RefreshAggregate(next Props, current DispatchFunc, handle runtime.Handle) DispatchFunc {
	if current != nil && handle != nil {
		handle.Off(runtime.EventAll, runtime.EventFunc(current))
	}

	return InstallAggregate(next, handle)
}

// everyNames collects the property names matching the fire-every
// naming pattern, the catch-all included, in sorted order.
func everyNames(props Props) []string {
	var names []string

	for name := range props {
		kind, _ := Classify(name)
		if kind == KindEvery || kind == KindAll {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// callbackID returns the identity of a handler property value.
// Non-function values settle to zero and never register as a change
// between themselves.
func callbackID(value interface{}) uintptr {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Func {
		return 0
	}

	return rv.Pointer()
}
