// SPDX-License-Identifier: EPL-2.0

//go:build !cgo || nolame

package lame

import "github.com/ik5/audenc/session"

// Available reports whether libmp3lame is linked in.
const Available = false

// New always fails with ErrUnavailable in builds without libmp3lame.
func New() (session.Engine, error) {
	return nil, ErrUnavailable
}

func Version() string { return "" }
