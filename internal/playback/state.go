package playback

import "time"

// RunState is the playback state machine's current state.
type RunState int

const (
	Idle RunState = iota
	Sorting
	Paused
	Sorted
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sorting:
		return "sorting"
	case Paused:
		return "paused"
	case Sorted:
		return "sorted"
	default:
		return "unknown"
	}
}

const (
	MinArraySize     = 5
	MaxArraySize     = 25
	DefaultArraySize = 10

	MinSpeed     = 1
	MaxSpeed     = 5
	DefaultSpeed = 3

	// FlourishInterval separates successive highlights of the completion
	// flourish.
	FlourishInterval = 75 * time.Millisecond
)

var speedDelays = [MaxSpeed]time.Duration{
	500 * time.Millisecond,
	250 * time.Millisecond,
	100 * time.Millisecond,
	50 * time.Millisecond,
	25 * time.Millisecond,
}

// DelayForSpeed maps a speed level to the pause between step pulls.
func DelayForSpeed(speed int) (time.Duration, bool) {
	if speed < MinSpeed || speed > MaxSpeed {
		return 0, false
	}
	return speedDelays[speed-1], true
}

func ValidArraySize(n int) bool { return n >= MinArraySize && n <= MaxArraySize }

func ValidSpeed(s int) bool { return s >= MinSpeed && s <= MaxSpeed }
