// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNotVorbis wraps any failure to open the Ogg Vorbis stream.
var ErrNotVorbis = errors.New("not an Ogg Vorbis stream")
