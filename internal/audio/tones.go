package audio

import (
	"math"
	"sync"
	"time"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// MasterGain keeps the cues quiet enough to sit under a lecture.
	MasterGain = 0.3

	noteGain  = 0.5
	noteFloor = 0.001
)

// Tone is a sine note with an exponential fade.
type Tone struct {
	Frequency float64
	Duration  time.Duration
}

var (
	SwapTone         = Tone{Frequency: 200, Duration: 100 * time.Millisecond}
	PassCompleteTone = Tone{Frequency: 440, Duration: 80 * time.Millisecond}
)

const (
	sortedBase = 300.0
	sortedTop  = 900.0
)

// SortedTone rises from 300 Hz to 900 Hz as index goes from 0 to total-1.
func SortedTone(index, total int) Tone {
	f := sortedBase
	if total > 1 {
		f += float64(index) / float64(total-1) * (sortedTop - sortedBase)
	}
	return Tone{Frequency: f, Duration: 100 * time.Millisecond}
}

type voice struct {
	freq   float64
	pos    int
	length int
	decay  float64 // per-sample gain multiplier
}

// Mixer sums active voices into mono float32 frames. Play may be called from
// any goroutine; Render is called from the audio callback.
type Mixer struct {
	mu         sync.Mutex
	sampleRate float64
	voices     []*voice
}

func NewMixer(sampleRate int) *Mixer {
	return &Mixer{sampleRate: float64(sampleRate)}
}

func (m *Mixer) Play(t Tone) {
	length := int(t.Duration.Seconds() * m.sampleRate)
	if length <= 0 || t.Frequency <= 0 {
		return
	}
	v := &voice{
		freq:   t.Frequency,
		length: length,
		decay:  math.Pow(noteFloor/noteGain, 1/float64(length)),
	}
	m.mu.Lock()
	m.voices = append(m.voices, v)
	m.mu.Unlock()
}

// Active returns the number of voices still sounding.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

func (m *Mixer) Render(out []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range out {
		out[i] = 0
	}
	live := m.voices[:0]
	for _, v := range m.voices {
		gain := noteGain * math.Pow(v.decay, float64(v.pos))
		for i := range out {
			if v.pos >= v.length {
				break
			}
			phase := 2 * math.Pi * v.freq * float64(v.pos) / m.sampleRate
			out[i] += float32(math.Sin(phase) * gain * MasterGain)
			gain *= v.decay
			v.pos++
		}
		if v.pos < v.length {
			live = append(live, v)
		}
	}
	for i := len(live); i < len(m.voices); i++ {
		m.voices[i] = nil
	}
	m.voices = live
}
