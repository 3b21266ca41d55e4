package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/san-kum/bubblesort/internal/playback"
	"github.com/san-kum/bubblesort/internal/sorting"
	"go.uber.org/zap"
)

// ErrUnavailable indicates the binary was built without an audio backend.
var ErrUnavailable = errors.New("audio: output not available (build with -tags portaudio)")

// Synth turns playback notifications into tones.
type Synth struct {
	playback.NopListener
	mixer *Mixer
	out   io.Closer
	log   *zap.Logger
}

// NewSynth returns a synth that only feeds m. Open attaches an output.
func NewSynth(m *Mixer, log *zap.Logger) *Synth {
	if log == nil {
		log = zap.NewNop()
	}
	return &Synth{mixer: m, log: log}
}

// Open starts the default output device.
func Open(log *zap.Logger) (*Synth, error) {
	s := NewSynth(NewMixer(SampleRate), log)
	out, err := openStream(s.mixer)
	if errors.Is(err, ErrUnavailable) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("audio: open output: %w", err)
	}
	s.out = out
	s.log.Info("audio started", zap.Int("sample_rate", SampleRate))
	return s, nil
}

func (s *Synth) Mixer() *Mixer { return s.mixer }

func (s *Synth) Sound(cue sorting.Sound) {
	switch cue {
	case sorting.SoundSwap:
		s.mixer.Play(SwapTone)
	case sorting.SoundPassComplete:
		s.mixer.Play(PassCompleteTone)
	}
}

func (s *Synth) Flourish(index, total int) {
	s.mixer.Play(SortedTone(index, total))
}

func (s *Synth) Close() error {
	if s.out == nil {
		return nil
	}
	err := s.out.Close()
	s.out = nil
	return err
}
