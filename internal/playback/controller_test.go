package playback_test

import (
	"sort"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bubblesort/internal/clock"
	"github.com/san-kum/bubblesort/internal/playback"
	"github.com/san-kum/bubblesort/internal/sorting"
)

type recorder struct {
	steps      []sorting.Step
	sounds     []sorting.Sound
	flourishes [][2]int
	states     []playback.RunState
}

func (r *recorder) StepApplied(s sorting.Step)       { r.steps = append(r.steps, s) }
func (r *recorder) Sound(s sorting.Sound)            { r.sounds = append(r.sounds, s) }
func (r *recorder) Flourish(i, n int)                { r.flourishes = append(r.flourishes, [2]int{i, n}) }
func (r *recorder) StateChanged(s playback.RunState) { r.states = append(r.states, s) }

// runUntilDone fires pulls until the controller leaves Sorting, checking that
// at most one pull is ever pending.
func runUntilDone(m *clock.Manual, c *playback.Controller) {
	for i := 0; i < 10000 && c.State() == playback.Sorting; i++ {
		ExpectWithOffset(1, m.Pending()).To(Equal(1))
		ExpectWithOffset(1, m.RunNext()).To(BeTrue())
	}
	ExpectWithOffset(1, c.State()).NotTo(Equal(playback.Sorting))
}

var _ = Describe("Controller", func() {
	var (
		m   *clock.Manual
		rec *recorder
		gen *sorting.Generator
		c   *playback.Controller
	)

	newController := func(opts ...playback.Option) *playback.Controller {
		all := append([]playback.Option{
			playback.WithGenerator(gen),
			playback.WithListener(rec),
		}, opts...)
		ctrl, err := playback.New(m, all...)
		Expect(err).NotTo(HaveOccurred())
		return ctrl
	}

	BeforeEach(func() {
		m = clock.NewManual()
		rec = &recorder{}
		gen = sorting.NewGenerator(11)
		c = newController()
	})

	Describe("construction", func() {
		It("starts idle with a default-state random array", func() {
			Expect(c.State()).To(Equal(playback.Idle))
			Expect(c.ArraySize()).To(Equal(playback.DefaultArraySize))
			Expect(c.Speed()).To(Equal(playback.DefaultSpeed))
			Expect(c.Delay()).To(Equal(100 * time.Millisecond))
			Expect(c.Presented()).To(Equal(c.Initial()))
			Expect(c.Presented()).To(HaveEach(HaveField("State", sorting.Default)))
			Expect(c.HighlightedLine()).To(BeZero())
		})

		It("rejects bad options", func() {
			_, err := playback.New(m, playback.WithArraySize(4))
			Expect(err).To(MatchError(playback.ErrArraySize))
			_, err = playback.New(m, playback.WithSpeed(6))
			Expect(err).To(MatchError(playback.ErrSpeed))
			_, err = playback.New(nil)
			Expect(err).To(MatchError(playback.ErrNoScheduler))
		})
	})

	Describe("speed table", func() {
		DescribeTable("maps levels to delays",
			func(speed int, want time.Duration, ok bool) {
				d, valid := playback.DelayForSpeed(speed)
				Expect(valid).To(Equal(ok))
				Expect(d).To(Equal(want))
			},
			Entry("slowest", 1, 500*time.Millisecond, true),
			Entry("level 2", 2, 250*time.Millisecond, true),
			Entry("default", 3, 100*time.Millisecond, true),
			Entry("level 4", 4, 50*time.Millisecond, true),
			Entry("fastest", 5, 25*time.Millisecond, true),
			Entry("too slow", 0, time.Duration(0), false),
			Entry("too fast", 6, time.Duration(0), false),
		)
	})

	Describe("sorting", func() {
		It("applies the first step immediately and one step per delay", func() {
			c.Start()
			Expect(c.State()).To(Equal(playback.Sorting))
			Expect(rec.steps).To(HaveLen(1))
			Expect(rec.steps[0].CodeLine).To(Equal(sorting.LineStart))
			Expect(m.Pending()).To(Equal(1))

			m.Advance(99 * time.Millisecond)
			Expect(rec.steps).To(HaveLen(1))
			m.Advance(time.Millisecond)
			Expect(rec.steps).To(HaveLen(2))
			Expect(c.HighlightedLine()).To(Equal(sorting.LineOuterLoop))
		})

		It("replays exactly the producer's sequence and ends sorted", func() {
			want := sorting.Produce(c.Initial()).Collect()

			c.Start()
			runUntilDone(m, c)

			Expect(rec.steps).To(Equal(want))
			Expect(c.State()).To(Equal(playback.Sorted))
			Expect(c.SwapCount()).To(Equal(sorting.Inversions(sorting.Values(c.Initial()))))
			Expect(c.Presented()).To(HaveEach(HaveField("State", sorting.Sorted)))
			Expect(sort.IntsAreSorted(sorting.Values(c.Presented()))).To(BeTrue())
			Expect(c.HighlightedLine()).To(Equal(sorting.LineReturn))
			_, live := c.CurrentStep()
			Expect(live).To(BeFalse())
		})

		It("forwards sound tags", func() {
			c.Start()
			runUntilDone(m, c)

			var want []sorting.Sound
			for _, s := range rec.steps {
				if s.Sound != sorting.SoundNone {
					want = append(want, s.Sound)
				}
			}
			Expect(rec.sounds).To(Equal(want))
			Expect(rec.sounds).To(ContainElement(sorting.SoundPassComplete))
		})

		It("keeps equal values in input order", func() {
			input := gen.FromValues([]int{5, 2, 8, 2, 5})
			c = newController(playback.WithInitialArray(input))

			c.Start()
			runUntilDone(m, c)

			Expect(sorting.Values(c.Presented())).To(Equal([]int{2, 2, 5, 5, 8}))
			Expect(sorting.IDs(c.Presented())).To(Equal([]int{
				input[1].ID, input[3].ID, input[0].ID, input[4].ID, input[2].ID,
			}))
		})

		It("ignores start unless idle", func() {
			c.Start()
			c.Start()
			Expect(rec.steps).To(HaveLen(1))
			Expect(m.Pending()).To(Equal(1))

			c.Pause()
			c.Start()
			Expect(c.State()).To(Equal(playback.Paused))

			c.Resume()
			runUntilDone(m, c)
			applied := len(rec.steps)
			c.Start()
			Expect(c.State()).To(Equal(playback.Sorted))
			Expect(rec.steps).To(HaveLen(applied))
		})
	})

	Describe("pause and resume", func() {
		It("cancels the pending pull and resumes at the next step", func() {
			want := sorting.Produce(c.Initial()).Collect()

			c.Start()
			m.Advance(350 * time.Millisecond)
			c.Pause()
			Expect(c.State()).To(Equal(playback.Paused))
			Expect(m.Pending()).To(BeZero())

			applied := len(rec.steps)
			m.Advance(10 * time.Second)
			Expect(rec.steps).To(HaveLen(applied))

			c.Resume()
			Expect(rec.steps).To(HaveLen(applied + 1))
			Expect(m.Pending()).To(Equal(1))

			for i := 0; i < 5; i++ {
				m.RunNext()
				c.Pause()
				c.Resume()
			}
			runUntilDone(m, c)
			Expect(rec.steps).To(Equal(want))
		})

		It("ignores pause and resume out of turn", func() {
			c.Pause()
			Expect(c.State()).To(Equal(playback.Idle))
			c.Resume()
			Expect(c.State()).To(Equal(playback.Idle))
			Expect(rec.steps).To(BeEmpty())

			c.Start()
			c.Resume()
			Expect(rec.steps).To(HaveLen(1))
			Expect(m.Pending()).To(Equal(1))
		})

		It("toggles through start, pause and resume", func() {
			c.Toggle()
			Expect(c.State()).To(Equal(playback.Sorting))
			c.Toggle()
			Expect(c.State()).To(Equal(playback.Paused))
			c.Toggle()
			Expect(c.State()).To(Equal(playback.Sorting))
		})

		It("uses a speed changed while paused for the next pull", func() {
			c.Start()
			c.Pause()
			Expect(c.SetSpeed(5)).To(BeTrue())
			c.Resume()
			applied := len(rec.steps)

			m.Advance(24 * time.Millisecond)
			Expect(rec.steps).To(HaveLen(applied))
			m.Advance(time.Millisecond)
			Expect(rec.steps).To(HaveLen(applied + 1))
		})
	})

	Describe("configuration", func() {
		It("refuses changes while sorting", func() {
			c.Start()
			Expect(c.SetSpeed(1)).To(BeFalse())
			Expect(c.SetArraySize(20)).To(BeFalse())
			initial := c.Initial()
			c.GenerateNewArray()
			Expect(c.Initial()).To(Equal(initial))
			Expect(c.State()).To(Equal(playback.Sorting))
		})

		It("refuses out of range values", func() {
			Expect(c.SetSpeed(0)).To(BeFalse())
			Expect(c.SetSpeed(6)).To(BeFalse())
			Expect(c.SetArraySize(4)).To(BeFalse())
			Expect(c.SetArraySize(26)).To(BeFalse())
			Expect(c.Speed()).To(Equal(playback.DefaultSpeed))
			Expect(c.ArraySize()).To(Equal(playback.DefaultArraySize))
		})

		It("regenerates the array on a size change", func() {
			old := c.Initial()
			Expect(c.SetArraySize(25)).To(BeTrue())
			Expect(c.Initial()).To(HaveLen(25))
			Expect(c.Presented()).To(Equal(c.Initial()))
			for _, e := range c.Initial() {
				Expect(sorting.IDs(old)).NotTo(ContainElement(e.ID))
			}
		})

		It("discards a paused run when the size changes", func() {
			c.Start()
			c.Pause()
			Expect(c.SetArraySize(5)).To(BeTrue())
			Expect(c.State()).To(Equal(playback.Idle))
			Expect(m.Pending()).To(BeZero())
			_, live := c.CurrentStep()
			Expect(live).To(BeFalse())
		})
	})

	Describe("reset", func() {
		expectReset := func() {
			Expect(c.State()).To(Equal(playback.Idle))
			Expect(c.SwapCount()).To(BeZero())
			Expect(c.Presented()).To(Equal(sorting.WithState(c.Initial(), sorting.Default)))
			Expect(m.Pending()).To(BeZero())
			Expect(c.Flourishing()).To(BeFalse())
		}

		It("restores the initial array from sorting", func() {
			c.Start()
			m.Advance(2 * time.Second)
			c.Reset()
			expectReset()
		})

		It("restores the initial array from paused", func() {
			c.Start()
			m.Advance(time.Second)
			c.Pause()
			c.Reset()
			expectReset()
		})

		It("restores the initial array from sorted and stops the flourish", func() {
			c.Start()
			runUntilDone(m, c)
			Expect(c.Flourishing()).To(BeTrue())
			c.Reset()
			expectReset()
			Expect(rec.flourishes).To(BeEmpty())
		})

		It("allows sorting again after reset", func() {
			c.Start()
			runUntilDone(m, c)
			c.Reset()
			rec.steps = nil
			c.Start()
			runUntilDone(m, c)
			Expect(rec.steps).To(Equal(sorting.Produce(c.Initial()).Collect()))
		})

		It("generates a new array from sorted", func() {
			c.Start()
			runUntilDone(m, c)
			old := c.Initial()
			c.GenerateNewArray()
			expectReset()
			Expect(c.Initial()).NotTo(Equal(old))
		})
	})

	Describe("completion flourish", func() {
		It("sweeps a highlight across the array then settles", func() {
			c.Start()
			runUntilDone(m, c)
			n := len(c.Presented())

			m.Advance(0)
			Expect(rec.flourishes).To(Equal([][2]int{{0, n}}))
			Expect(c.Presented()[0].State).To(Equal(sorting.FinalHighlight))

			m.Advance(playback.FlourishInterval)
			Expect(rec.flourishes).To(HaveLen(2))
			Expect(c.Presented()[0].State).To(Equal(sorting.Sorted))
			Expect(c.Presented()[1].State).To(Equal(sorting.FinalHighlight))

			m.Advance(time.Duration(n) * playback.FlourishInterval)
			Expect(rec.flourishes).To(HaveLen(n))
			Expect(rec.flourishes[n-1]).To(Equal([2]int{n - 1, n}))
			Expect(c.Presented()).To(HaveEach(HaveField("State", sorting.Sorted)))
			Expect(c.Flourishing()).To(BeFalse())
			Expect(m.Pending()).To(BeZero())
		})
	})

	Describe("close", func() {
		It("cancels every pending callback and ignores later commands", func() {
			c.Start()
			runUntilDone(m, c)
			Expect(m.Pending()).NotTo(BeZero())

			c.Close()
			Expect(m.Pending()).To(BeZero())

			c.Reset()
			c.GenerateNewArray()
			Expect(c.State()).To(Equal(playback.Sorted))
			Expect(c.SetSpeed(1)).To(BeFalse())
		})

		It("cancels a pending pull", func() {
			c.Start()
			c.Close()
			Expect(m.Pending()).To(BeZero())
			m.Advance(time.Minute)
			Expect(rec.steps).To(HaveLen(1))
		})
	})

	It("reports every transition", func() {
		c.Start()
		c.Pause()
		c.Resume()
		runUntilDone(m, c)
		c.Reset()
		Expect(rec.states).To(Equal([]playback.RunState{
			playback.Sorting, playback.Paused, playback.Sorting, playback.Sorted, playback.Idle,
		}))
	})
})
