package announcement

import (
	"sync"
)

// inflightGuard keeps one dispatch per announcement alive at a time.
// A second attempt while the first is still running is a silent no-op,
// so a kafka redelivery or a double-click on retry never double-sends.
type inflightGuard struct {
	mu     sync.Mutex
	active map[uint]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{active: make(map[uint]struct{})}
}

// TryBegin claims the announcement. false means someone else holds it.
func (g *inflightGuard) TryBegin(id uint) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, held := g.active[id]; held {
		return false
	}
	g.active[id] = struct{}{}
	return true
}

// End releases the claim
func (g *inflightGuard) End(id uint) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, id)
}
