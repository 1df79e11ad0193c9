// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with jfreymuth/oggvorbis.
//
// The decoder reads sequentially and needs no seeking, so it works on pipes
// and network bodies. Samples are already float32 in [-1, 1] and are passed
// through interleaved, one whole frame at a time.
package vorbis
