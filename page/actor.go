package page

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrClosed is returned when sending to an actor that has been closed.
var ErrClosed = errors.New("page: actor closed")

type request struct {
	ev    Event // nil reads a snapshot
	reply chan Result
}

// Actor owns one State and applies events to it one at a time, in the
// order they are received.
type Actor struct {
	inbox     chan request
	done      chan struct{}
	closeOnce sync.Once
	lastUsed  atomic.Int64
}

// NewActor starts an actor for a freshly loaded page.
func NewActor(imageCounts map[int]int) *Actor {
	a := &Actor{
		inbox: make(chan request),
		done:  make(chan struct{}),
	}
	a.touch()
	go a.run(NewState(imageCounts))
	return a
}

func (a *Actor) run(s *State) {
	for {
		select {
		case req := <-a.inbox:
			if req.ev == nil {
				req.reply <- Result{Snapshot: s.Snapshot()}
				continue
			}
			req.reply <- s.Apply(req.ev)
		case <-a.done:
			return
		}
	}
}

// Send applies ev and waits for the result.
func (a *Actor) Send(ctx context.Context, ev Event) (Result, error) {
	if ev == nil {
		return Result{}, errors.New("page: nil event")
	}
	return a.do(ctx, request{ev: ev, reply: make(chan Result, 1)})
}

// Snapshot returns the current state without changing it.
func (a *Actor) Snapshot(ctx context.Context) (Snapshot, error) {
	res, err := a.do(ctx, request{reply: make(chan Result, 1)})
	return res.Snapshot, err
}

func (a *Actor) do(ctx context.Context, req request) (Result, error) {
	a.touch()
	select {
	case a.inbox <- req:
	case <-a.done:
		return Result{}, ErrClosed
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Close stops the actor. The scroll and intersection streams of the page are
// released together; later sends return ErrClosed.
func (a *Actor) Close() {
	a.closeOnce.Do(func() { close(a.done) })
}

// Closed reports whether Close has been called.
func (a *Actor) Closed() bool {
	select {
	case <-a.done:
		return true
	default:
		return false
	}
}

// LastUsed returns the time of the most recent send.
func (a *Actor) LastUsed() time.Time {
	return time.Unix(0, a.lastUsed.Load())
}

func (a *Actor) touch() {
	a.lastUsed.Store(time.Now().UnixNano())
}
