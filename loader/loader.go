// Package loader makes player runtimes available before use. A runtime
// already present in the registry resolves immediately; otherwise its
// source is fetched and started, and the runtime installs itself into
// the registry on success.
package loader

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/darkhz/playerview/runtime"
)

// Options configures a load attempt.
type Options struct {
	// Runtime names the runtime in the registry.
	Runtime string

	// Source locates the runtime: an executable name, a path, or an
	// http(s) URL to download the executable from.
	Source string

	// Socket is the base socket path handed to the runtime.
	Socket string

	// Retries is the number of connection retries handed to the runtime.
	Retries int
}

// Builder constructs a runtime from the load options once its source
// has been settled to a local executable.
type Builder func(ctx context.Context, opts Options, execpath string) (runtime.Runtime, error)

var (
	builders = map[string]Builder{
		"mpv": mpvBuilder,
	}

	buildersMutex sync.Mutex
)

// RegisterBuilder registers a builder for the provided runtime name.
func RegisterBuilder(name string, b Builder) {
	buildersMutex.Lock()
	defer buildersMutex.Unlock()

	builders[name] = b
}

// Load makes the named runtime available. Concurrent callers are not
// deduplicated: each issues its own attempt, and the registry presence
// check short-circuits every caller after the first success. With no
// registered runtime and no source, Load fails before anything else
// runs.
func Load(ctx context.Context, opts Options) error {
	if _, ok := runtime.Lookup(opts.Runtime); ok {
		return nil
	}

	if opts.Source == "" {
		return fmt.Errorf(
			"Loader: Runtime %q is not loaded and no source was provided",
			opts.Runtime,
		)
	}

	buildersMutex.Lock()
	builder, ok := builders[opts.Runtime]
	buildersMutex.Unlock()
	if !ok {
		return fmt.Errorf("Loader: No builder for runtime %q", opts.Runtime)
	}

	execpath := opts.Source
	if isRemote(execpath) {
		path, err := fetch(ctx, execpath)
		if err != nil {
			return err
		}

		execpath = path
	}

	rt, err := builder(ctx, opts, execpath)
	if err != nil {
		return err
	}

	runtime.Register(rt)

	return nil
}

// mpvBuilder probes the mpv executable and returns its runtime.
func mpvBuilder(ctx context.Context, opts Options, execpath string) (runtime.Runtime, error) {
	path, err := exec.LookPath(execpath)
	if err != nil {
		return nil, fmt.Errorf("Loader: Could not find the %s executable", execpath)
	}

	if err := exec.CommandContext(ctx, path, "--version").Run(); err != nil {
		return nil, fmt.Errorf("Loader: Could not run %s: %w", path, err)
	}

	socket := opts.Socket
	if socket == "" {
		socket = defaultSocket()
	}

	retries := opts.Retries
	if retries <= 0 {
		retries = 10
	}

	return runtime.NewMPV(path, socket, retries), nil
}

// defaultSocket returns the base socket path used when none is
// configured. Per-instance paths derived from it are routed through
// platform.Socket by the runtime.
func defaultSocket() string {
	return filepath.Join(os.TempDir(), "playerview-socket")
}

// isRemote returns whether a source has to be downloaded first.
func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "https://")
}
