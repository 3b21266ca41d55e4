package playback

import "errors"

var (
	// ErrArraySize indicates an array size outside [MinArraySize, MaxArraySize].
	ErrArraySize = errors.New("playback: array size out of bounds")

	// ErrSpeed indicates a speed outside [MinSpeed, MaxSpeed].
	ErrSpeed = errors.New("playback: speed out of bounds")

	// ErrNoScheduler indicates a controller built without a scheduler.
	ErrNoScheduler = errors.New("playback: scheduler is required")

	// ErrNoCursor indicates a step pull with no live step sequence. It is a
	// programming error and the pull is abandoned.
	ErrNoCursor = errors.New("playback: step pulled without a cursor")
)
