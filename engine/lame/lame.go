// SPDX-License-Identifier: EPL-2.0

//go:build cgo && !nolame

package lame

/*
#cgo LDFLAGS: -lmp3lame
#include <lame/lame.h>
*/
import "C"

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/ik5/audenc/session"
)

// Available reports whether libmp3lame is linked in.
const Available = true

// Engine is a libmp3lame encoder handle.
type Engine struct {
	gfp      *C.lame_global_flags
	channels int
}

var _ session.Engine = (*Engine)(nil)

// New allocates an unconfigured encoder. It matches session.EngineFactory.
func New() (session.Engine, error) {
	gfp := C.lame_init()
	if gfp == nil {
		return nil, ErrMalloc
	}

	return &Engine{gfp: gfp, channels: 2}, nil
}

// Version of the linked libmp3lame.
func Version() string {
	return C.GoString(C.get_lame_version())
}

func (e *Engine) SetInSampleRate(hz int) error {
	if e.gfp == nil {
		return ErrClosed
	}

	return setterError("input sample rate", hz, int(C.lame_set_in_samplerate(e.gfp, C.int(hz))))
}

func (e *Engine) SetNumChannels(n int) error {
	if e.gfp == nil {
		return ErrClosed
	}

	if err := setterError("channel count", n, int(C.lame_set_num_channels(e.gfp, C.int(n)))); err != nil {
		return err
	}
	e.channels = n

	return nil
}

func (e *Engine) SetBitrate(kbps int) error {
	if e.gfp == nil {
		return ErrClosed
	}

	return setterError("bitrate", kbps, int(C.lame_set_brate(e.gfp, C.int(kbps))))
}

func (e *Engine) SetMode(m session.Mode) error {
	if e.gfp == nil {
		return ErrClosed
	}

	var mode C.MPEG_mode
	switch m {
	case session.ModeStereo:
		mode = C.STEREO
	case session.ModeJointStereo:
		mode = C.JOINT_STEREO
	case session.ModeDualChannel:
		mode = C.DUAL_CHANNEL
	case session.ModeMono:
		mode = C.MONO
	default:
		return fmt.Errorf("lame: unsupported mode %v", m)
	}

	return setterError("mode", int(m), int(C.lame_set_mode(e.gfp, mode)))
}

func (e *Engine) SetQuality(q int) error {
	if e.gfp == nil {
		return ErrClosed
	}

	return setterError("quality", q, int(C.lame_set_quality(e.gfp, C.int(q))))
}

func (e *Engine) SetWriteID3TagAutomatic(enabled bool) error {
	if e.gfp == nil {
		return ErrClosed
	}

	v := C.int(0)
	if enabled {
		v = 1
	}
	C.lame_set_write_id3tag_automatic(e.gfp, v)

	return nil
}

func (e *Engine) InitParams() error {
	if e.gfp == nil {
		return ErrClosed
	}

	if status := int(C.lame_init_params(e.gfp)); status < 0 {
		return fmt.Errorf("lame: lame_init_params failed (status %d)", status)
	}

	return nil
}

// Encode encodes frames interleaved frames from pcm. Mono input goes
// through lame_encode_buffer, stereo through lame_encode_buffer_interleaved.
func (e *Engine) Encode(pcm []int16, frames int, out []byte) (int, error) {
	if e.gfp == nil {
		return 0, ErrClosed
	}
	// libmp3lame treats a zero sized buffer as unbounded
	if len(out) == 0 {
		return 0, ErrBufferTooSmall
	}
	if frames < 0 || frames > math.MaxInt32 || frames > len(pcm)/max(e.channels, 1) {
		return 0, fmt.Errorf("%w: %d frames from %d samples", ErrFrameCount, frames, len(pcm))
	}
	if frames == 0 {
		return 0, nil
	}

	pcmPtr := (*C.short)(unsafe.Pointer(&pcm[0]))
	outPtr := (*C.uchar)(unsafe.Pointer(&out[0]))

	var status C.int
	if e.channels == 1 {
		status = C.lame_encode_buffer(e.gfp, pcmPtr, nil, C.int(frames), outPtr, capacity(out))
	} else {
		status = C.lame_encode_buffer_interleaved(e.gfp, pcmPtr, C.int(frames), outPtr, capacity(out))
	}

	if status < 0 {
		return 0, statusError(int(status))
	}

	return int(status), nil
}

func (e *Engine) Flush(out []byte) (int, error) {
	if e.gfp == nil {
		return 0, ErrClosed
	}
	if len(out) == 0 {
		return 0, ErrBufferTooSmall
	}

	status := C.lame_encode_flush(e.gfp, (*C.uchar)(unsafe.Pointer(&out[0])), capacity(out))
	if status < 0 {
		return 0, statusError(int(status))
	}

	return int(status), nil
}

// capacity is len(out) clamped to what a C int can carry.
func capacity(out []byte) C.int {
	return C.int(min(len(out), math.MaxInt32))
}

// Close releases the handle. Calling it again is a no-op.
func (e *Engine) Close() error {
	if e.gfp == nil {
		return nil
	}

	status := C.lame_close(e.gfp)
	e.gfp = nil
	if status < 0 {
		return fmt.Errorf("lame: lame_close failed (status %d)", int(status))
	}

	return nil
}
