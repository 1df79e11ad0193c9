// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audenc/utils"
)

// Int16Reader pulls whole interleaved frames of 16-bit PCM from a Source.
type Int16Reader struct {
	src Source
	buf []float32
}

func NewInt16Reader(src Source) *Int16Reader {
	return &Int16Reader{
		src: src,
		buf: make([]float32, 4096),
	}
}

func (r *Int16Reader) Channels() int { return r.src.Channels() }

// ReadFrames fills dst with as many whole frames as fit, reading the
// source repeatedly until dst is full or the source ends. It returns the
// number of frames (not samples) written. A trailing partial frame at the
// end of the source is dropped. io.EOF is returned with the last frames.
func (r *Int16Reader) ReadFrames(dst []int16) (int, error) {
	channels := r.src.Channels()
	if channels < 1 {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels)
	}

	want := len(dst) - len(dst)%channels
	if cap(r.buf) < want {
		r.buf = make([]float32, want)
	}

	filled, idle := 0, 0
	for filled < want {
		n, err := r.src.ReadSamples(r.buf[:want-filled])
		for i := range n {
			dst[filled+i] = utils.Float32ToInt16(r.buf[i])
		}
		filled += n

		if err == io.EOF {
			return filled / channels, io.EOF
		}
		if err != nil {
			return filled / channels, fmt.Errorf("%w", err)
		}

		if n == 0 {
			idle++
			if idle > maxIdleReads {
				return filled / channels, io.ErrNoProgress
			}
		} else {
			idle = 0
		}
	}

	return filled / channels, nil
}
