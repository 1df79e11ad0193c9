// SPDX-License-Identifier: EPL-2.0

package audenc

import "errors"

var (
	// ErrNoEngine is returned when Options.Engine is nil.
	ErrNoEngine = errors.New("no encoder engine configured")

	// ErrInvalidOptions is returned for negative rates, channel counts or sizes.
	ErrInvalidOptions = errors.New("invalid transcode options")
)
