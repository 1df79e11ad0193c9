// SPDX-License-Identifier: EPL-2.0

// Package audio holds the streaming pieces that sit between a decoded file
// and the encoder.
//
// Every stage implements Source, so they chain:
//
//	src, _ := decoder.Decode(f)
//	mixed, _ := audio.NewChannelMixer(src, 2)
//	resampled, _ := audio.NewResampler(mixed, 44100)
//	pcm := audio.NewInt16Reader(resampled)
//
//	buf := make([]int16, 1152*2)
//	for {
//	    frames, err := pcm.ReadFrames(buf)
//	    // hand buf[:frames*2] to the encoder
//	    if err == io.EOF {
//	        break
//	    }
//	}
//
// # Samples
//
// Samples are interleaved float32 values in [-1, 1]. Int16Reader is the
// only place they are quantized, with clamping, to signed 16-bit PCM.
//
// # Registry
//
// A Registry maps format names and file extensions to decoders.
// Lookup picks a decoder from a path's extension, case-insensitively.
//
// # Resampling
//
// Resampler uses four-point cubic interpolation and a one-pole low-pass
// when the target rate is below the source rate. It keeps the channel
// count.
//
// # Channel mixing
//
// ChannelMixer produces mono or stereo. Mono is the average of all input
// channels; stereo from mono duplicates the signal; anything wider than
// stereo folds even channels into the left side and odd channels into the
// right.
//
// All stages return io.EOF once the stream is drained, possibly together
// with the final samples.
package audio
