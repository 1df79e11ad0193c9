// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF/WAVE files using go-audio/wav.
//
// Integer PCM at 8, 16, 24 and 32 bits is decoded, mono or multi-channel,
// at any sample rate. WAVE_FORMAT_EXTENSIBLE files are accepted when they
// carry integer PCM. Floating point and compressed encodings are rejected
// with ErrUnsupportedEncoding.
//
//	f, _ := os.Open("take.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// WriteWAV16 produces 16-bit PCM and needs an io.WriteSeeker, typically an
// *os.File, because chunk sizes are patched after the samples are written.
package wav
