// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio sources for tests.
package audiotest

import (
	"io"
	"math"
)

// Source generates audio from a waveform function. It satisfies
// audio.Source without importing it.
type Source struct {
	sampleRate int
	channels   int
	frames     int // frames to generate in total
	generated  int
	waveform   func(frame, channel int) float32

	// MaxRead caps how many samples a single ReadSamples returns (0 = no cap).
	MaxRead int
	// Err, when set, is returned once FailAfter frames have been produced.
	Err       error
	FailAfter int
	// CloseErr is returned from Close.
	CloseErr error

	closed int
}

func NewSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *Source {
	return &Source{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

// NewSilence produces frames of zeros.
func NewSilence(sampleRate, channels, frames int) *Source {
	return NewSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

// NewSine produces the same sine wave on every channel.
func NewSine(sampleRate, channels, frames int, frequency float64) *Source {
	return NewSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstant produces value on every channel.
func NewConstant(sampleRate, channels, frames int, value float32) *Source {
	return NewSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// NewPerChannel produces a constant per channel: values[c] on channel c.
func NewPerChannel(sampleRate, frames int, values ...float32) *Source {
	return NewSource(sampleRate, len(values), frames, func(_, channel int) float32 { return values[channel] })
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.closed++
	return s.CloseErr
}

// Closed reports how many times Close was called.
func (s *Source) Closed() int { return s.closed }

// Generated reports how many frames have been produced so far.
func (s *Source) Generated() int { return s.generated }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.Err != nil && s.generated >= s.FailAfter {
		return 0, s.Err
	}
	if s.generated >= s.frames {
		return 0, io.EOF
	}

	limit := len(dst)
	if s.MaxRead > 0 {
		limit = min(limit, s.MaxRead)
	}

	count := min(limit/s.channels, s.frames-s.generated)
	if s.Err != nil {
		count = min(count, s.FailAfter-s.generated)
	}

	for f := range count {
		for c := range s.channels {
			dst[f*s.channels+c] = s.waveform(s.generated+f, c)
		}
	}
	s.generated += count

	if s.generated >= s.frames {
		return count * s.channels, io.EOF
	}

	return count * s.channels, nil
}
