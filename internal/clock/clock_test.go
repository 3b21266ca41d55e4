package clock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestManualAdvanceOrder(t *testing.T) {
	m := NewManual()
	var got []int

	m.AfterFunc(30*time.Millisecond, func() { got = append(got, 3) })
	m.AfterFunc(10*time.Millisecond, func() { got = append(got, 1) })
	m.AfterFunc(10*time.Millisecond, func() { got = append(got, 2) })

	m.Advance(20 * time.Millisecond)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("after 20ms got %v", got)
	}
	if m.Pending() != 1 {
		t.Errorf("expected 1 pending, got %d", m.Pending())
	}

	m.Advance(10 * time.Millisecond)
	if len(got) != 3 {
		t.Fatalf("after 30ms got %v", got)
	}
	if m.Now() != 30*time.Millisecond {
		t.Errorf("now = %v", m.Now())
	}
}

func TestManualChainedTimers(t *testing.T) {
	m := NewManual()
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 5 {
			m.AfterFunc(10*time.Millisecond, tick)
		}
	}
	m.AfterFunc(10*time.Millisecond, tick)

	m.Advance(35 * time.Millisecond)
	if count != 3 {
		t.Errorf("expected 3 ticks, got %d", count)
	}
	if n := m.RunAll(100); n != 2 {
		t.Errorf("expected 2 remaining ticks, got %d", n)
	}
}

func TestManualStop(t *testing.T) {
	m := NewManual()
	ran := false
	timer := m.AfterFunc(time.Millisecond, func() { ran = true })

	if !timer.Stop() {
		t.Error("first Stop should report true")
	}
	if timer.Stop() {
		t.Error("second Stop should report false")
	}
	m.Advance(time.Second)
	if ran {
		t.Error("stopped timer fired")
	}

	fired := m.AfterFunc(0, func() {})
	m.RunNext()
	if fired.Stop() {
		t.Error("Stop after firing should report false")
	}
}

func TestLoopRunsTimersOnLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewLoop()
	go l.Run(ctx)

	var hits atomic.Int32
	done := make(chan struct{})
	err := l.Do(ctx, func() {
		l.AfterFunc(5*time.Millisecond, func() {
			hits.Add(1)
			close(done)
		})
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 hit, got %d", hits.Load())
	}
}

func TestLoopStopBeforeFire(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewLoop()
	go l.Run(ctx)

	var hits atomic.Int32
	var timer Timer
	_ = l.Do(ctx, func() {
		timer = l.AfterFunc(20*time.Millisecond, func() { hits.Add(1) })
	})
	var stopped bool
	_ = l.Do(ctx, func() { stopped = timer.Stop() })

	time.Sleep(60 * time.Millisecond)
	if !stopped {
		t.Error("Stop should report true before firing")
	}
	if hits.Load() != 0 {
		t.Error("stopped timer fired")
	}
}

func TestLoopDoAfterShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop()
	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()
	cancel()
	<-errc

	if err := l.Do(context.Background(), func() {}); err == nil {
		t.Error("expected error after loop shutdown")
	}
}
