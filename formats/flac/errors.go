// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	// ErrNotFlac wraps a failure to read the fLaC signature or STREAMINFO block.
	ErrNotFlac = errors.New("not a FLAC stream")

	// ErrChannelMismatch is returned when a frame carries a different
	// number of subframes than STREAMINFO announced.
	ErrChannelMismatch = errors.New("frame channel count differs from stream info")
)
