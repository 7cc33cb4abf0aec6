package store

import "sync"

// SaveGate serializes saves per note id: at most one save may be in flight
// for a given note at any time. A debounced auto-save racing a manual save
// for the same note would otherwise interleave the metadata and blob writes.
type SaveGate struct {
	mu       sync.Mutex
	inFlight map[string]chan struct{}
}

func NewSaveGate() *SaveGate {
	return &SaveGate{inFlight: make(map[string]chan struct{})}
}

// Acquire claims the save slot for id, waiting for any in-flight save of the
// same note to settle first. Saves for different ids never wait on each
// other.
func (g *SaveGate) Acquire(id string) {
	for {
		g.mu.Lock()
		settled, busy := g.inFlight[id]
		if !busy {
			g.inFlight[id] = make(chan struct{})
			g.mu.Unlock()
			return
		}
		g.mu.Unlock()
		<-settled
	}
}

// Release frees the save slot for id and wakes waiters. Safe to call for an
// unclaimed id.
func (g *SaveGate) Release(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if settled, ok := g.inFlight[id]; ok {
		delete(g.inFlight, id)
		close(settled)
	}
}
