package playback

import (
	"time"

	"github.com/san-kum/bubblesort/internal/sorting"
)

// startFlourish sweeps a highlight across the sorted array, one element per
// FlourishInterval, then settles every element back to Sorted.
func (c *Controller) startFlourish() {
	c.cancelFlourish()
	total := len(c.presented)
	for i := 0; i < total; i++ {
		index := i
		t := c.sched.AfterFunc(time.Duration(i)*FlourishInterval, func() {
			c.flourishStep(index, total)
		})
		c.flourish = append(c.flourish, t)
	}
	settle := time.Duration(total)*FlourishInterval + FlourishInterval
	c.flourish = append(c.flourish, c.sched.AfterFunc(settle, c.flourishDone))
}

func (c *Controller) flourishStep(index, total int) {
	if c.state != Sorted || index >= len(c.presented) {
		return
	}
	next := sorting.Clone(c.presented)
	if index > 0 {
		next[index-1].State = sorting.Sorted
	}
	next[index].State = sorting.FinalHighlight
	c.presented = next
	c.listener.Flourish(index, total)
}

func (c *Controller) flourishDone() {
	if c.state != Sorted {
		return
	}
	c.presented = sorting.WithState(c.presented, sorting.Sorted)
	c.flourish = nil
}

// Flourishing reports whether the completion flourish is still running.
func (c *Controller) Flourishing() bool { return len(c.flourish) > 0 }

func (c *Controller) cancelFlourish() {
	for _, t := range c.flourish {
		t.Stop()
	}
	c.flourish = nil
}
