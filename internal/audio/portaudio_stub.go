//go:build !portaudio

package audio

import "io"

func openStream(*Mixer) (io.Closer, error) {
	return nil, ErrUnavailable
}
