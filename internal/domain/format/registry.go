package format

import "sync"

// Well-known hook names the grid columns refer to.
const (
	HookUSD     = "usd"
	HookPercent = "pct"
)

// The namespace of named hooks. Populated during init and read-only
// afterwards; the lock only matters for callers that register custom
// hooks before serving traffic.
var (
	mu    sync.RWMutex
	hooks = make(map[string]Hook)
)

//nolint:gochecknoinits // default hooks must exist before any lookup
func init() {
	Register(HookUSD, Currency)
	Register(HookPercent, Percent)
}

// Register attaches a hook under name, replacing any previous entry.
func Register(name string, h Hook) {
	if name == "" || h == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	hooks[name] = h
}

// Lookup returns the hook registered under name.
func Lookup(name string) (Hook, bool) {
	mu.RLock()
	defer mu.RUnlock()
	h, ok := hooks[name]
	return h, ok
}

// Apply runs the named hook against v. Unknown names behave like the
// shared guard clause and return v unchanged.
func Apply(name string, v any) any {
	h, ok := Lookup(name)
	if !ok {
		return v
	}
	return h(v)
}
