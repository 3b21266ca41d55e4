//go:build portaudio

package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

type stream struct {
	s *portaudio.Stream
}

func openStream(m *Mixer) (*stream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	// output only; duplex streams fail on Linux when devices differ
	s, err := portaudio.OpenDefaultStream(0, 1, SampleRate, BufferSize, m.Render)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	if err := s.Start(); err != nil {
		s.Close()
		portaudio.Terminate()
		return nil, err
	}
	return &stream{s: s}, nil
}

func (st *stream) Close() error {
	if err := st.s.Stop(); err != nil {
		return err
	}
	if err := st.s.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}
