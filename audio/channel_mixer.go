// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer converts a source to mono or stereo.
//
// Mixing to mono averages all channels. Mono is duplicated to stereo.
// Sources with more than two channels fold into stereo by averaging the
// even channels into the left output and the odd ones into the right.
type ChannelMixer struct {
	src  Source
	in   int
	out  int
	tmp  []float32
	rest []float32 // start of a frame split across source reads
}

func NewChannelMixer(src Source, channels int) (*ChannelMixer, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%w: cannot mix to %d channels", ErrUnsupportedChannels, channels)
	}

	in := src.Channels()
	if in < 1 {
		return nil, fmt.Errorf("%w: source has %d channels", ErrUnsupportedChannels, in)
	}

	return &ChannelMixer{
		src: src,
		in:  in,
		out: channels,
		tmp: make([]float32, 4096),
	}, nil
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.out }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }

func (m *ChannelMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}
	if m.in == m.out {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.out
	need := frames * m.in
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	m.tmp = m.tmp[:need]

	carried := copy(m.tmp, m.rest)
	m.rest = m.rest[:0]

	n, err := m.src.ReadSamples(m.tmp[carried:])
	n += carried
	got := n / m.in
	src := m.tmp[:got*m.in]
	m.rest = append(m.rest, m.tmp[got*m.in:n]...)

	switch {
	case m.out == 1:
		inv := 1 / float32(m.in)
		for f := range got {
			var sum float32
			for _, v := range src[f*m.in : (f+1)*m.in] {
				sum += v
			}
			dst[f] = sum * inv
		}

	case m.in == 1:
		for f := range got {
			dst[2*f] = src[f]
			dst[2*f+1] = src[f]
		}

	default:
		evens := float32((m.in + 1) / 2)
		odds := float32(m.in / 2)
		for f := range got {
			var l, r float32
			for c, v := range src[f*m.in : (f+1)*m.in] {
				if c%2 == 0 {
					l += v
				} else {
					r += v
				}
			}
			dst[2*f] = l / evens
			dst[2*f+1] = r / odds
		}
	}

	return got * m.out, err
}
