// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with hajimehoshi/go-mp3.
//
// go-mp3 upmixes mono streams, so every source from this package reports two
// channels regardless of the file. The mp3enc command uses it to read back
// its own output when --verify is set.
package mp3
