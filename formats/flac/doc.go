// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams using mewkiz/flac.
//
// Frames are parsed one at a time as samples are requested, so memory use
// stays at one block regardless of file length. Any bit depth FLAC allows
// (4 to 32 bits) is normalized to float32 in [-1, 1].
package flac
