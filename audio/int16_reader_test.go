// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/audenc/internal/audiotest"
)

func TestInt16Reader_ReadFrames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		channels   int
		frames     int
		maxRead    int
		dstLen     int
		wantFrames []int
		wantEOF    bool // on the last call
	}{
		{"mono single call", 1, 1000, 0, 1152, []int{1000}, true},
		{"stereo fills across small reads", 2, 1000, 10, 600, []int{300, 300, 300, 100}, true},
		{"exact fit ends without data", 1, 1152, 0, 1152, []int{1152, 0}, true},
		{"dst rounded down to whole frames", 2, 10, 0, 5, []int{2, 2, 2, 2, 2, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewConstant(44100, tt.channels, tt.frames, 0.5)
			src.MaxRead = tt.maxRead
			r := NewInt16Reader(src)

			if r.Channels() != tt.channels {
				t.Fatalf("Channels() = %d, want %d", r.Channels(), tt.channels)
			}

			dst := make([]int16, tt.dstLen)
			for i, want := range tt.wantFrames {
				got, err := r.ReadFrames(dst)
				if got != want {
					t.Fatalf("call %d: frames = %d, want %d", i, got, want)
				}

				last := i == len(tt.wantFrames)-1
				if last && tt.wantEOF && err != io.EOF {
					t.Fatalf("call %d: error = %v, want EOF", i, err)
				}
				if !last && err != nil && err != io.EOF {
					t.Fatalf("call %d: error = %v", i, err)
				}

				for j := range got * tt.channels {
					if dst[j] != 16383 {
						t.Fatalf("call %d: sample %d = %d, want 16383", i, j, dst[j])
					}
				}
			}
		})
	}
}

func TestInt16Reader_Clamps(t *testing.T) {
	t.Parallel()

	r := NewInt16Reader(audiotest.NewPerChannel(8000, 4, 2, -2))
	dst := make([]int16, 8)

	frames, err := r.ReadFrames(dst)
	if frames != 4 || err != io.EOF {
		t.Fatalf("ReadFrames() = (%d, %v), want (4, EOF)", frames, err)
	}
	for i := 0; i < len(dst); i += 2 {
		if dst[i] != 32767 || dst[i+1] != -32767 {
			t.Fatalf("frame %d = [%d %d], want [32767 -32767]", i/2, dst[i], dst[i+1])
		}
	}
}

func TestInt16Reader_Errors(t *testing.T) {
	t.Parallel()

	t.Run("source error keeps decoded frames", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("truncated file")
		src := audiotest.NewConstant(44100, 2, 1000, 0.5)
		src.Err = boom
		src.FailAfter = 100

		frames, err := NewInt16Reader(src).ReadFrames(make([]int16, 512))
		if frames != 100 || !errors.Is(err, boom) {
			t.Errorf("ReadFrames() = (%d, %v), want (100, %v)", frames, err, boom)
		}
	})

	t.Run("stalled source", func(t *testing.T) {
		t.Parallel()

		src := audiotest.NewSilence(44100, 2, 1000)
		src.MaxRead = 1

		if _, err := NewInt16Reader(src).ReadFrames(make([]int16, 64)); !errors.Is(err, io.ErrNoProgress) {
			t.Errorf("ReadFrames() error = %v, want io.ErrNoProgress", err)
		}
	})

	t.Run("no channels", func(t *testing.T) {
		t.Parallel()

		if _, err := NewInt16Reader(audiotest.NewSilence(44100, 0, 10)).ReadFrames(make([]int16, 64)); !errors.Is(err, ErrUnsupportedChannels) {
			t.Errorf("ReadFrames() error = %v, want ErrUnsupportedChannels", err)
		}
	})
}
