// SPDX-License-Identifier: EPL-2.0

package session

import "fmt"

const (
	// Quality is the fixed speed/quality tradeoff handed to the engine
	// (0 = best and slowest, 9 = fastest).
	Quality = 5

	// MaxFlushSize is the largest amount of data a flush can produce.
	// Flush buffers should be at least this large.
	MaxFlushSize = 7200
)

// Mode is the channel mode used by the engine.
type Mode int

const (
	ModeStereo Mode = iota
	ModeJointStereo
	ModeDualChannel
	ModeMono
)

func (m Mode) String() string {
	switch m {
	case ModeStereo:
		return "stereo"
	case ModeJointStereo:
		return "joint-stereo"
	case ModeDualChannel:
		return "dual-channel"
	case ModeMono:
		return "mono"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Config holds the parameters a session is created with. Values are not
// range checked here; the engine rejects what it cannot handle.
type Config struct {
	// SampleRate of the incoming PCM in Hz.
	SampleRate int `yaml:"sample_rate"`
	// Channels of the incoming PCM, 1 = mono, 2 = stereo.
	Channels int `yaml:"channels"`
	// BitrateKbps is the target bitrate, e.g. 128.
	BitrateKbps int `yaml:"bitrate_kbps"`
}

// Mode derives the channel mode from the channel count.
func (c Config) Mode() Mode {
	if c.Channels == 1 {
		return ModeMono
	}

	return ModeJointStereo
}

// EncodeBufferSize returns a worst case output size for encoding frames
// sample frames in one call.
func EncodeBufferSize(frames int) int {
	if frames < 0 {
		frames = 0
	}

	return frames*5/4 + MaxFlushSize
}
