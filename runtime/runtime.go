package runtime

import "sync"

// EventAll is the reserved name of the aggregate event channel.
// A handler registered on it receives every event a player emits,
// tagged with the event's name.
const EventAll = "all"

// EventFunc handles a player event.
type EventFunc func(event string, payload map[string]interface{})

// Runtime describes a player runtime.
type Runtime interface {
	Name() string
	Setup(id string, config map[string]interface{}) (Handle, error)
}

// Handle describes a player instance created by a runtime.
type Handle interface {
	On(event string, fn EventFunc)
	Once(event string, fn EventFunc)
	Off(event string, fn EventFunc)
	OffAll()

	Remove()
	Closed() bool

	Call(args ...interface{}) (interface{}, error)
	Get(prop string) (interface{}, error)
	Set(prop string, value interface{}) error
}

// Registry stores the loaded player runtimes.
type Registry struct {
	runtimes map[string]Runtime

	mutex sync.Mutex
}

var registry Registry

// Register adds a runtime to the registry. A loaded runtime registers
// itself here, after which lookups for its name resolve immediately.
func Register(r Runtime) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	if registry.runtimes == nil {
		registry.runtimes = make(map[string]Runtime)
	}

	registry.runtimes[r.Name()] = r
}

// Lookup returns the runtime registered under the provided name.
func Lookup(name string) (Runtime, bool) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	r, ok := registry.runtimes[name]

	return r, ok
}

// Deregister removes the runtime registered under the provided name.
func Deregister(name string) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	delete(registry.runtimes, name)
}
