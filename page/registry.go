package page

import (
	"errors"
	"sync"
	"time"
)

// ErrExpired is returned for a session with no live page state: it was swept
// while idle, or the page was never loaded since the server started. The
// browser has to reload to get a state that matches what it shows.
var ErrExpired = errors.New("page: session expired")

// Registry maps visitor session ids to their page actors. Only a full page
// load (Reset) creates an actor.
type Registry struct {
	mu          sync.Mutex
	actors      map[string]*Actor
	imageCounts map[int]int
}

// NewRegistry creates an empty registry for a catalog with the given image counts.
func NewRegistry(imageCounts map[int]int) *Registry {
	return &Registry{
		actors:      make(map[string]*Actor),
		imageCounts: imageCounts,
	}
}

// Reset replaces the actor of session id with a fresh one, as on a full page load.
func (r *Registry) Reset(id string) *Actor {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.actors[id]; ok {
		old.Close()
	}
	a := NewActor(r.imageCounts)
	r.actors[id] = a
	return a
}

// Get returns the live actor of session id, or ErrExpired.
func (r *Registry) Get(id string) (*Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.actors[id]
	if !ok || a.Closed() {
		return nil, ErrExpired
	}
	return a, nil
}

// Remove closes and forgets the actor of session id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.actors[id]; ok {
		a.Close()
		delete(r.actors, id)
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.actors)
}

// Sweep closes actors idle for longer than idle and returns how many were removed.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, a := range r.actors {
		if a.Closed() || a.LastUsed().Before(cutoff) {
			a.Close()
			delete(r.actors, id)
			n++
		}
	}
	return n
}

// StartJanitor sweeps idle sessions every interval. Returns a stop function.
func (r *Registry) StartJanitor(idle, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				r.Sweep(idle)
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// Close stops every actor.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.actors {
		a.Close()
		delete(r.actors, id)
	}
}
