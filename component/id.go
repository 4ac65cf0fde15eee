package component

import (
	"strconv"
	"sync"
)

// IDPrefix prefixes every generated instance identifier.
const IDPrefix = "playerview"

// IDGenerator hands out instance identifiers. The zero value is ready
// to use; the counter only moves forward and is never reset for the
// life of the process, so no two identifiers are ever reused.
type IDGenerator struct {
	counter int64

	mutex sync.Mutex
}

// Next returns the next identifier, of the form "playerview-<n>".
func (g *IDGenerator) Next() string {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	id := IDPrefix + "-" + strconv.FormatInt(g.counter, 10)
	g.counter++

	return id
}

var ids IDGenerator

// NextID returns a process-wide unique instance identifier.
func NextID() string {
	return ids.Next()
}
