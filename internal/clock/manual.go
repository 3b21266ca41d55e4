package clock

import (
	"sort"
	"time"
)

// Manual is a virtual clock. Time only moves when Advance or RunNext is
// called, and callbacks run synchronously on the caller's goroutine.
type Manual struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	m       *Manual
	when    time.Duration
	seq     int
	f       func()
	stopped bool
}

func NewManual() *Manual { return &Manual{} }

func (m *Manual) Now() time.Duration { return m.now }

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{m: m, when: m.now + d, seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	t.m.remove(t)
	return true
}

// Pending returns the number of armed timers.
func (m *Manual) Pending() int { return len(m.timers) }

// Advance moves time forward by d, running every timer that falls due in
// order, including timers armed by callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	for {
		t := m.earliest()
		if t == nil || t.when > end {
			break
		}
		m.fire(t)
	}
	m.now = end
}

// RunNext jumps to the earliest pending timer and runs it. It returns false
// when nothing is pending.
func (m *Manual) RunNext() bool {
	t := m.earliest()
	if t == nil {
		return false
	}
	m.fire(t)
	return true
}

// RunAll runs timers until none remain or limit callbacks have fired.
func (m *Manual) RunAll(limit int) int {
	n := 0
	for n < limit && m.RunNext() {
		n++
	}
	return n
}

func (m *Manual) fire(t *manualTimer) {
	if t.when > m.now {
		m.now = t.when
	}
	t.stopped = true
	m.remove(t)
	t.f()
}

func (m *Manual) earliest() *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].when != m.timers[j].when {
			return m.timers[i].when < m.timers[j].when
		}
		return m.timers[i].seq < m.timers[j].seq
	})
	return m.timers[0]
}

func (m *Manual) remove(t *manualTimer) {
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}
