package component

import (
	"context"
	"fmt"
	"sync"

	"github.com/darkhz/playerview/loader"
	"github.com/darkhz/playerview/runtime"
)

// Event is passed to the lifecycle notification callbacks. The player
// reference may be nil when the player was destroyed out-of-band.
type Event struct {
	Player runtime.Handle
	ID     string
}

// Options configures a component.
type Options struct {
	// ID is the caller-supplied instance identifier. When empty, one
	// is generated.
	ID string

	// Runtime names the player runtime to mount against.
	Runtime string

	// Source is handed to the loader when the runtime is not loaded yet.
	Source string

	// Socket is the base socket path handed to the loader.
	Socket string

	// Retries is the number of connection retries handed to the loader.
	Retries int

	// Props is the initial property bag.
	Props Props

	// Whitelist is the supported-option table for the configuration
	// merge. Defaults to DefaultOptions.
	Whitelist []string

	// OnMount, if set, is invoked once the player is created and its
	// event handlers are attached.
	OnMount func(Event)

	// OnUnmount, if set, is invoked before the player is destroyed.
	OnUnmount func(Event)

	// IDs, if set, generates the instance identifier instead of the
	// process-wide counter.
	IDs *IDGenerator
}

// Component wraps one player instance inside a mount, update and
// unmount lifecycle and owns its single aggregate event subscription.
type Component struct {
	id   string
	opts Options

	props     Props
	whitelist []string

	handle   runtime.Handle
	dispatch DispatchFunc

	unmounted bool

	mutex sync.Mutex
}

// New returns a component for the provided options. The instance
// identifier is assigned here and is immutable afterwards.
func New(opts Options) *Component {
	id := opts.ID
	if id == "" {
		if opts.IDs != nil {
			id = opts.IDs.Next()
		} else {
			id = NextID()
		}
	}

	whitelist := opts.Whitelist
	if whitelist == nil {
		whitelist = DefaultOptions
	}

	return &Component{
		id:        id,
		opts:      opts,
		props:     opts.Props,
		whitelist: whitelist,
	}
}

// Mount loads the player runtime if required, creates the player with
// the effective configuration and attaches the event handlers. The
// mount notification fires only after the subscriptions are in place.
// A failed load aborts the transition: the handle stays nil, nothing
// is attached and no notification fires. A mount completing after
// Unmount has been requested is a no-op.
func (c *Component) Mount(ctx context.Context) error {
	err := loader.Load(ctx, loader.Options{
		Runtime: c.opts.Runtime,
		Source:  c.opts.Source,
		Socket:  c.opts.Socket,
		Retries: c.opts.Retries,
	})
	if err != nil {
		return err
	}

	rt, ok := runtime.Lookup(c.opts.Runtime)
	if !ok {
		return fmt.Errorf("Component: Runtime %q did not register itself", c.opts.Runtime)
	}

	c.mutex.Lock()
	props := c.props
	c.mutex.Unlock()

	handle, err := rt.Setup(c.id, BuildConfig(props, c.whitelist))
	if err != nil {
		return err
	}

	c.mutex.Lock()
	if c.unmounted {
		c.mutex.Unlock()
		handle.Remove()

		return nil
	}
	c.handle = handle
	c.mutex.Unlock()

	AttachOnce(props, handle)

	dispatch := InstallAggregate(props, handle)

	c.mutex.Lock()
	c.dispatch = dispatch
	c.mutex.Unlock()

	if c.opts.OnMount != nil {
		c.opts.OnMount(Event{Player: handle, ID: c.id})
	}

	return nil
}

// ShouldUpdate decides how to absorb a new property bag. With no
// player handle there is nothing to reconcile. A change limited to the
// event-bearing properties is fully absorbed here by swapping the
// dispatch function, and reported as false. Any other change returns
// true for the caller to act on.
func (c *Component) ShouldUpdate(next Props) bool {
	c.mutex.Lock()
	handle := c.handle
	props := c.props
	c.mutex.Unlock()

	if handle == nil {
		return false
	}

	if EventsChanged(props, next) {
		c.RefreshListeners(next)
		return false
	}

	c.mutex.Lock()
	c.props = next
	c.mutex.Unlock()

	return true
}

// RefreshListeners replaces the dispatch function attached to the
// aggregate channel with one built from the provided properties.
func (c *Component) RefreshListeners(next Props) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.dispatch = RefreshAggregate(next, c.dispatch, c.handle)
	c.props = next
}

// Unmount notifies the owner, detaches every listener and destroys the
// player exactly once. The notification receives the handle as it
// stands, which may be nil when the player was destroyed out-of-band;
// teardown then reduces to the notification.
func (c *Component) Unmount() {
	c.mutex.Lock()
	c.unmounted = true
	handle := c.handle
	c.mutex.Unlock()

	if c.opts.OnUnmount != nil {
		c.opts.OnUnmount(Event{Player: handle, ID: c.id})
	}

	if handle == nil {
		return
	}

	handle.OffAll()
	handle.Remove()

	c.mutex.Lock()
	c.handle = nil
	c.dispatch = nil
	c.mutex.Unlock()
}

// ID returns the instance identifier.
func (c *Component) ID() string {
	return c.id
}

// Runtime returns the name of the runtime the component mounts against.
func (c *Component) Runtime() string {
	return c.opts.Runtime
}

// Props returns the current property bag.
func (c *Component) Props() Props {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.props
}

// Handle returns the player handle, or nil while unmounted.
func (c *Component) Handle() runtime.Handle {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.handle
}

// SetHandle replaces the player handle. It exists to support external
// destruction scenarios and tests; production code owns the handle
// through the lifecycle alone.
func (c *Component) SetHandle(handle runtime.Handle) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.handle = handle
}

// Dispatch returns the currently attached dispatch function.
func (c *Component) Dispatch() DispatchFunc {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.dispatch
}

// SetDispatch replaces the stored dispatch function. Like SetHandle,
// it is a seam for external destruction scenarios and tests.
func (c *Component) SetDispatch(dispatch DispatchFunc) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.dispatch = dispatch
}

// Callbacks returns the mount and unmount notification callbacks.
func (c *Component) Callbacks() (onMount, onUnmount func(Event)) {
	return c.opts.OnMount, c.opts.OnUnmount
}
