// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeChunk is how many samples are converted per encoder write.
const writeChunk = 8192

// WriteWAV16 writes interleaved 16-bit PCM as a WAV file. The encoder seeks
// back to patch chunk sizes once all samples are written.
func WriteWAV16(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	if channels < 1 || len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d channels for %d samples", ErrInvalidChannels, channels, len(samples))
	}

	enc := wav.NewEncoder(w, sampleRate, 16, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, min(len(samples), writeChunk)),
		SourceBitDepth: 16,
	}

	// at least one write so the header goes out for an empty file
	for off := 0; off == 0 || off < len(samples); off += writeChunk {
		chunk := samples[off:min(off+writeChunk, len(samples))]
		buf.Data = buf.Data[:len(chunk)]
		for i, s := range chunk {
			buf.Data[i] = int(s)
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}

		if len(samples) == 0 {
			break
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}
