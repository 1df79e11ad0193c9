// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through go-audio/aiff.
//
// Uncompressed big-endian PCM at 8, 16, 24 or 32 bits is supported, with
// any channel count and sample rate. Samples come out as float32 in [-1, 1]:
//
//	f, _ := os.Open("loop.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrUnsupportedBitDepth) {
//	    // e.g. 12-bit
//	}
//
// Inputs that cannot seek are read into memory before parsing.
package aiff
