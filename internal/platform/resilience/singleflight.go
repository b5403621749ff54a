package resilience

import "sync"

// SingleFlight collapses concurrent loads of the same key into a single
// execution. The cache store uses it so one cold standings or top-scorer
// key triggers one graph query, not one per waiting caller.
type SingleFlight struct {
	mu     sync.Mutex
	active map[string]*flight
}

// flight is one in-progress load; latecomers wait on wg and read the
// leader's result.
type flight struct {
	wg     sync.WaitGroup
	result any
	err    error
}

// Do runs load at most once per key at a time. The bool reports whether
// the result came from another caller's load.
func (g *SingleFlight) Do(key string, load func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.active == nil {
		g.active = make(map[string]*flight)
	}

	if f, ok := g.active[key]; ok {
		g.mu.Unlock()
		f.wg.Wait()
		return f.result, f.err, true
	}

	f := &flight{}
	f.wg.Add(1)
	g.active[key] = f
	g.mu.Unlock()

	f.result, f.err = load()
	f.wg.Done()

	g.mu.Lock()
	delete(g.active, key)
	g.mu.Unlock()

	return f.result, f.err, false
}
