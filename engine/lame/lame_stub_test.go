// SPDX-License-Identifier: EPL-2.0

//go:build !cgo || nolame

package lame

import (
	"errors"
	"testing"

	"github.com/ik5/audenc/session"
)

func TestNew_Unavailable(t *testing.T) {
	t.Parallel()

	if Available {
		t.Fatal("Available = true in a build without libmp3lame")
	}

	_, err := session.Open(New, session.Config{SampleRate: 44100, Channels: 2, BitrateKbps: 128})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Open() error = %v, want ErrUnavailable", err)
	}
	if !errors.Is(err, session.ErrInitFailed) {
		t.Errorf("Open() error = %v, want ErrInitFailed", err)
	}
}
