// Package clock provides the deferred-callback scheduling used to pace
// playback. Every Scheduler here runs callbacks on a single owner goroutine,
// so code driven by it needs no locking.
package clock

import (
	"context"
	"sync"
	"time"
)

// Timer is a pending callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped it; false means it already ran or was already stopped.
	Stop() bool
}

type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Posted arms wall-clock timers whose callbacks are handed to post instead
// of being run on the timer goroutine. post must execute the function on the
// owner goroutine (an event loop, a bubbletea program, ...).
type Posted struct {
	post func(func())
}

func NewPosted(post func(func())) *Posted {
	return &Posted{post: post}
}

func (p *Posted) AfterFunc(d time.Duration, f func()) Timer {
	t := &postedTimer{}
	t.timer = time.AfterFunc(d, func() {
		p.post(func() { t.fire(f) })
	})
	return t
}

type postedTimer struct {
	mu    sync.Mutex
	timer *time.Timer
	done  bool
}

// fire runs on the owner goroutine, so a Stop issued there before the posted
// function is dequeued still wins.
func (t *postedTimer) fire(f func()) {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	t.done = true
	t.mu.Unlock()
	f()
}

func (t *postedTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.timer.Stop()
	return true
}

// Loop is a single-goroutine event loop. Functions passed to Post or Do and
// callbacks armed with AfterFunc all run serially inside Run.
type Loop struct {
	*Posted
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

func NewLoop() *Loop {
	l := &Loop{
		queue: make(chan func(), 64),
		done:  make(chan struct{}),
	}
	l.Posted = NewPosted(l.Post)
	return l
}

// Run executes queued functions until ctx is cancelled. Functions posted
// after Run returns are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.queue:
			f()
		}
	}
}

// Post enqueues f without waiting for it to run.
func (l *Loop) Post(f func()) {
	select {
	case l.queue <- f:
	case <-l.done:
	}
}

// Do runs f on the loop and waits for it. It must not be called from the
// loop goroutine.
func (l *Loop) Do(ctx context.Context, f func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		f()
	}
	select {
	case l.queue <- wrapped:
	case <-l.done:
		return context.Canceled
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return context.Canceled
	case <-ctx.Done():
		return ctx.Err()
	}
}
