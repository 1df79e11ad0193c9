// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/audenc/audio"
)

// frameParser is the part of flac.Stream the source needs.
type frameParser interface {
	ParseNext() (*frame.Frame, error)
}

type source struct {
	stream     frameParser
	sampleRate int
	channels   int
	scale      float32

	// pending holds the interleaved samples of the last parsed frame.
	pending []int32
	off     int
	eof     bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return max(cap(s.pending), 4096) }

// next parses one frame and interleaves its subframes into pending.
func (s *source) next() error {
	f, err := s.stream.ParseNext()
	if err != nil {
		return err
	}

	if len(f.Subframes) != s.channels {
		return fmt.Errorf("%w: %d subframes, want %d", ErrChannelMismatch, len(f.Subframes), s.channels)
	}

	n := int(f.BlockSize)
	need := n * s.channels
	if cap(s.pending) < need {
		s.pending = make([]int32, need)
	}
	s.pending = s.pending[:need]

	for c, sub := range f.Subframes {
		for i := range min(n, len(sub.Samples)) {
			s.pending[i*s.channels+c] = sub.Samples[i]
		}
	}
	s.off = 0

	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	filled := 0
	for filled < len(dst) {
		if s.off >= len(s.pending) {
			if s.eof {
				return filled, io.EOF
			}

			err := s.next()
			if err == io.EOF {
				s.eof = true
				s.pending = s.pending[:0]
				return filled, io.EOF
			}
			if err != nil {
				return filled, fmt.Errorf("parsing flac frame: %w", err)
			}
		}

		n := min(len(dst)-filled, len(s.pending)-s.off)
		for i, v := range s.pending[s.off : s.off+n] {
			dst[filled+i] = float32(v) / s.scale
		}
		filled += n
		s.off += n
	}

	return filled, nil
}

type Decoder struct{}

// Decode reads the fLaC signature and STREAMINFO from r and streams
// frames on demand. Other metadata blocks are skipped.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlac, err)
	}

	info := stream.Info
	if info == nil || info.NChannels == 0 || info.SampleRate == 0 || info.BitsPerSample == 0 {
		return nil, ErrNotFlac
	}

	return &source{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		scale:      float32(int64(1) << (info.BitsPerSample - 1)),
	}, nil
}
