// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

// writeAIFF encodes interleaved samples into a temp file and returns its bytes.
func writeAIFF(t *testing.T, sampleRate, bitDepth, channels int, samples []int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.aif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}

	enc := aiff.NewEncoder(f, sampleRate, bitDepth, channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing fixture: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}

	return data
}

func readAll(t *testing.T, src interface {
	ReadSamples([]float32) (int, error)
}) []float32 {
	t.Helper()

	var all []float32
	buf := make([]float32, 6)
	for {
		n, err := src.ReadSamples(buf)
		all = append(all, buf[:n]...)
		if err == io.EOF {
			return all
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		bitDepth int
		channels int
		samples  []int
		want     []float32
	}{
		{"mono 16-bit", 44100, 16, 1, []int{0, 16384, -16384, -32768}, []float32{0, 0.5, -0.5, -1}},
		{"stereo 16-bit", 48000, 16, 2, []int{8192, -8192, 0, 16384}, []float32{0.25, -0.25, 0, 0.5}},
		{"mono 24-bit", 96000, 24, 1, []int{4194304, -8388608, 0}, []float32{0.5, -1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file := writeAIFF(t, tt.rate, tt.bitDepth, tt.channels, tt.samples)

			src, err := Decoder{}.Decode(bytes.NewReader(file))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			defer src.Close()

			if src.SampleRate() != tt.rate || src.Channels() != tt.channels {
				t.Errorf("got %d Hz / %d ch, want %d Hz / %d ch", src.SampleRate(), src.Channels(), tt.rate, tt.channels)
			}

			got := readAll(t, src)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d samples, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sample %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	file := writeAIFF(t, 22050, 16, 1, []int{1, 2, 3, 4, 5})

	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(file)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got := readAll(t, src); len(got) != 5 {
		t.Errorf("got %d samples, want 5", len(got))
	}
}

func TestDecoder_NotAiff(t *testing.T) {
	t.Parallel()

	for _, input := range [][]byte{nil, []byte("RIFF....WAVEfmt "), bytes.Repeat([]byte{0xff}, 64)} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(input)); !errors.Is(err, ErrNotAiffFile) {
			t.Errorf("Decode(%q) error = %v, want ErrNotAiffFile", input, err)
		}
	}
}

type fakeAIFF struct {
	data []int
	err  error
}

func (f *fakeAIFF) Format() *goaudio.Format { return &goaudio.Format{NumChannels: 1, SampleRate: 8000} }

func (f *fakeAIFF) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	n := copy(buf.Data, f.data)
	f.data = f.data[n:]
	if n == 0 {
		return 0, f.err
	}
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	t.Run("8-bit is signed", func(t *testing.T) {
		t.Parallel()

		src := &source{dec: &fakeAIFF{data: []int{64, -128}}, sampleRate: 8000, channels: 1, bitDepth: 8}
		buf := make([]float32, 4)

		n, err := src.ReadSamples(buf)
		if n != 2 || err != io.EOF {
			t.Fatalf("ReadSamples() = (%d, %v), want (2, EOF)", n, err)
		}
		if buf[0] != 0.5 || buf[1] != -1 {
			t.Errorf("samples = %v, want [0.5 -1]", buf[:2])
		}
	})

	t.Run("decoder error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("bad SSND chunk")
		src := &source{dec: &fakeAIFF{err: boom}, sampleRate: 8000, channels: 1, bitDepth: 16}

		if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
			t.Errorf("ReadSamples() error = %v, want %v", err, boom)
		}
		if src.BufSize() != 4 {
			t.Errorf("BufSize() = %d, want 4", src.BufSize())
		}
	})
}
