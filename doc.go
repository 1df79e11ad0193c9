// SPDX-License-Identifier: EPL-2.0

// Package audenc turns decoded audio into MP3.
//
// The encoder itself lives behind session.Engine. engine/lame binds
// libmp3lame through cgo, and session wraps one engine instance in an
// explicit, mutex-guarded Session (or the process-wide Slot used by the
// C ABI in cmd/lameenc).
//
// Transcode is the high level entry point. It mixes and resamples a
// decoded audio.Source to the requested layout and streams it through a
// session into any io.Writer:
//
//	f, _ := os.Open("take.flac")
//	src, _ := flac.Decoder{}.Decode(f)
//
//	out, _ := os.Create("take.mp3")
//	stats, err := audenc.Transcode(src, out, audenc.Options{
//	    Engine:      lame.New,
//	    SampleRate:  44100,
//	    BitrateKbps: 192,
//	})
//
// # Formats
//
// Decoders live under formats/: wav and aiff (go-audio), flac
// (mewkiz/flac), vorbis (oggvorbis) and mp3 (go-mp3). Each returns an
// audio.Source with float32 samples in [-1, 1].
//
// # Building
//
// engine/lame needs cgo and the libmp3lame headers. With CGO_ENABLED=0 or
// the nolame build tag the package still builds, and lame.New returns
// lame.ErrUnavailable.
package audenc
