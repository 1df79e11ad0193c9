// SPDX-License-Identifier: EPL-2.0

// Package ffi exposes a session.Slot through the integer status
// convention of the C entry points: 0 or a byte count on success, -1 on
// failure. A nil slice stands for a NULL pointer.
package ffi

import "github.com/ik5/audenc/session"

// Failure is the status every failing call returns.
const Failure = -1

// Shim turns Slot results into status codes.
type Shim struct {
	slot *session.Slot
}

// New returns a Shim driving slot.
func New(slot *session.Slot) *Shim {
	return &Shim{slot: slot}
}

// Init returns 0 when a session is live afterwards and -1 otherwise.
func (s *Shim) Init(sampleRate, channels, bitrateKbps int) int {
	err := s.slot.Init(session.Config{
		SampleRate:  sampleRate,
		Channels:    channels,
		BitrateKbps: bitrateKbps,
	})

	return session.Code(err)
}

// Encode returns the number of bytes written to out, or -1.
func (s *Shim) Encode(pcm []int16, frames int, out []byte) int {
	n, err := s.slot.Encode(pcm, frames, out)
	if err != nil {
		return Failure
	}

	return n
}

// Flush returns the number of bytes written to out, or -1.
func (s *Shim) Flush(out []byte) int {
	n, err := s.slot.Flush(out)
	if err != nil {
		return Failure
	}

	return n
}

// Close never fails; a release error from the engine is dropped after the
// slot has logged it.
func (s *Shim) Close() {
	_ = s.slot.Close()
}
