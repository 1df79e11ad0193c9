// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audenc/utils"
)

// maxIdleReads bounds how many empty, error free reads are tolerated from
// a source before giving up with io.ErrNoProgress.
const maxIdleReads = 100

// Resampler streams from src to a target sample rate using cubic
// interpolation. It works on interleaved samples and keeps the channel
// count. When downsampling, input passes through a one-pole low-pass first.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames consumed per output frame

	// hist holds frames t-1, t0, t+1, t+2 around the read position;
	// real marks the ones that came from the source rather than padding.
	hist [4][]float32
	real [4]bool
	pos  float64

	block    []float32
	off, end int
	srcEOF   bool
	primed   bool
	done     bool

	lowpass bool
	alpha   float32
	state   []float32
	warm    bool
}

// NewResampler converts src to dstRate.
func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 || src.SampleRate() <= 0 {
		return nil, ErrInvalidRate
	}

	channels := src.Channels()
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels)
	}

	step := float64(src.SampleRate()) / float64(dstRate)
	blockFrames := max(src.BufSize()/channels, 256)

	r := &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     step,
		block:    make([]float32, blockFrames*channels),
		lowpass:  step > 1,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// nextFrame copies the next source frame into dst, or returns io.EOF once
// the source is drained.
func (r *Resampler) nextFrame(dst []float32) error {
	idle := 0
	for r.off >= r.end {
		if r.srcEOF {
			return io.EOF
		}

		n, err := r.src.ReadSamples(r.block)
		n -= n % r.channels
		r.off, r.end = 0, n

		switch {
		case err == io.EOF:
			r.srcEOF = true
		case err != nil:
			return fmt.Errorf("%w", err)
		case n == 0:
			idle++
			if idle > maxIdleReads {
				return io.ErrNoProgress
			}
		}
	}

	copy(dst, r.block[r.off:r.off+r.channels])
	r.off += r.channels

	if r.lowpass {
		if !r.warm {
			copy(r.state, dst)
			r.warm = true
		}
		for c := range dst {
			r.state[c] = r.alpha*dst[c] + (1-r.alpha)*r.state[c]
			dst[c] = r.state[c]
		}
	}

	return nil
}

// fill loads hist[i] from the source, padding with hist[i-1] at the end.
func (r *Resampler) fill(i int) error {
	err := r.nextFrame(r.hist[i])
	if err == io.EOF {
		copy(r.hist[i], r.hist[i-1])
		r.real[i] = false
		return nil
	}
	if err != nil {
		return err
	}

	r.real[i] = true
	return nil
}

func (r *Resampler) prime() error {
	if err := r.nextFrame(r.hist[1]); err != nil {
		return err
	}
	copy(r.hist[0], r.hist[1])
	r.real[1] = true

	if err := r.fill(2); err != nil {
		return err
	}
	if err := r.fill(3); err != nil {
		return err
	}

	r.primed = true
	return nil
}

func (r *Resampler) advance() error {
	r.hist[0], r.hist[1], r.hist[2], r.hist[3] = r.hist[1], r.hist[2], r.hist[3], r.hist[0]
	r.real[0], r.real[1], r.real[2] = r.real[1], r.real[2], r.real[3]

	return r.fill(3)
}

// ReadSamples produces interleaved samples at the target rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			if err == io.EOF {
				r.done = true
			}
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		// interpolation needs t0 and t+1 from the source
		if !r.real[1] || !r.real[2] {
			r.done = true
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		base := written * r.channels
		for c := range r.channels {
			dst[base+c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
