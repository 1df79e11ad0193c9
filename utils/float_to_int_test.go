// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float32
		want int16
	}{
		{"zero", 0, 0},
		{"full scale positive", 1, 32767},
		{"full scale negative", -1, -32767},
		{"half", 0.5, 16383},
		{"clamps above", 3, 32767},
		{"clamps below", -3, -32767},
		{"positive infinity", float32(math.Inf(1)), 32767},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.in); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestIntToFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		v        int
		bitDepth int
		want     float32
	}{
		{"8-bit min", -128, 8, -1},
		{"8-bit half", 64, 8, 0.5},
		{"16-bit min", -32768, 16, -1},
		{"16-bit half", 16384, 16, 0.5},
		{"24-bit min", -8388608, 24, -1},
		{"24-bit quarter", 2097152, 24, 0.25},
		{"32-bit min", -2147483648, 32, -1},
		{"unknown depth treated as 16-bit", 16384, 12, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := IntToFloat32(tt.v, tt.bitDepth)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("IntToFloat32(%d, %d) = %v, want %v", tt.v, tt.bitDepth, got, tt.want)
			}
		})
	}
}

func TestFloat32ToInt16_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, v := range []int16{-32767, -1000, -1, 0, 1, 1000, 32767} {
		f := IntToFloat32(int(v), 16)
		got := Float32ToInt16(f)
		if d := int(got) - int(v); d < -1 || d > 1 {
			t.Errorf("round trip of %d gave %d", v, got)
		}
	}
}

func BenchmarkFloat32ToInt16(b *testing.B) {
	var sink int16
	for i := 0; b.Loop(); i++ {
		sink ^= Float32ToInt16(float32(i%2000)/1000 - 1)
	}
	_ = sink
}
