package resilience

import "sync"

// DefaultGroupLimit bounds how many breakers a Group tracks at once
const DefaultGroupLimit = 1024

// Group lazily creates one breaker per key (typically a target host) so a
// failing upstream only trips its own circuit.
type Group struct {
	name     string
	settings Settings
	limit    int

	mu       sync.Mutex
	breakers map[string]*Breaker
}

// Summary aggregates breaker states without exposing keys
type Summary struct {
	Tracked  int `json:"tracked"`
	Open     int `json:"open"`
	HalfOpen int `json:"half_open"`
}

// NewGroup creates a breaker group sharing one settings template
func NewGroup(name string, settings Settings) *Group {
	return &Group{
		name:     name,
		settings: settings,
		limit:    DefaultGroupLimit,
		breakers: make(map[string]*Breaker),
	}
}

// Get returns the breaker for key, creating it on first use. When the group
// is full, closed breakers are evicted; if none can be evicted the caller
// gets a fresh untracked breaker.
func (g *Group) Get(key string) *Breaker {
	g.mu.Lock()
	defer g.mu.Unlock()

	if b, ok := g.breakers[key]; ok {
		return b
	}

	b := New(g.name+":"+key, g.settings)
	if len(g.breakers) >= g.limit {
		g.evictClosed()
	}
	if len(g.breakers) >= g.limit {
		return b
	}
	g.breakers[key] = b
	return b
}

// evictClosed drops breakers with nothing to remember. Caller holds g.mu.
func (g *Group) evictClosed() {
	for k, b := range g.breakers {
		if b.State() == StateClosed {
			delete(g.breakers, k)
		}
	}
}

// Summary counts tracked breakers by state
func (g *Group) Summary() Summary {
	g.mu.Lock()
	tracked := make([]*Breaker, 0, len(g.breakers))
	for _, b := range g.breakers {
		tracked = append(tracked, b)
	}
	g.mu.Unlock()

	s := Summary{Tracked: len(tracked)}
	for _, b := range tracked {
		switch b.State() {
		case StateOpen:
			s.Open++
		case StateHalfOpen:
			s.HalfOpen++
		}
	}
	return s
}
