// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audenc/audio"
)

// oggReader is the part of oggvorbis.Reader the source needs.
type oggReader interface {
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	frameBuf   []float32
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.frameBuf) }

// ReadSamples decodes whole frames only. oggvorbis.Reader.Read counts
// interleaved values, so the request is trimmed to a frame multiple.
func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	if cap(s.frameBuf) < want {
		s.frameBuf = make([]float32, want)
	}
	s.frameBuf = s.frameBuf[:want]

	n, err := s.dec.Read(s.frameBuf)
	n -= n % s.channels
	copy(dst, s.frameBuf[:n])

	switch {
	case err == io.EOF:
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("decoding vorbis: %w", err)
	}

	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbis, err)
	}

	return newSource(dec, dec.SampleRate(), dec.Channels())
}

func newSource(dec oggReader, sampleRate, channels int) (*source, error) {
	if channels < 1 || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrNotVorbis, sampleRate, channels)
	}

	return &source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		frameBuf:   make([]float32, 4096-4096%channels),
	}, nil
}
