// Package pcm converts between normalized float samples and the signed
// integer PCM used by the codec libraries.
package pcm

import (
	"math"

	"github.com/cwbudde/nueva/dsp/core"
)

// Scale returns 2^(bits-1), the divisor that maps a signed sample of the
// given depth onto [-1, 1).
func Scale(bits int) float64 {
	return float64(int64(1) << (bits - 1))
}

// MaxInt returns 2^(bits-1) - 1, the largest signed sample of the depth.
func MaxInt(bits int) int {
	return int(int64(1)<<(bits-1) - 1)
}

// Normalize converts signed integer samples of depth bits to floats.
func Normalize(src []int, bits int) []float32 {
	scale := Scale(bits)
	out := make([]float32, len(src))
	for i, v := range src {
		out[i] = float32(float64(v) / scale)
	}
	return out
}

// NormalizeUnsigned8 converts offset-binary 8-bit samples (WAV stores 8-bit
// audio unsigned, centred on 128).
func NormalizeUnsigned8(src []int) []float32 {
	out := make([]float32, len(src))
	for i, v := range src {
		out[i] = float32(float64(v-128) / 128)
	}
	return out
}

// Quantize clamps x to [-1, 1] and scales it to the signed range of depth
// bits. NaN quantizes to zero.
func Quantize(x float32, bits int) int {
	v := float64(x)
	if math.IsNaN(v) {
		return 0
	}
	v = core.Clamp(v, -1, 1)
	return int(math.Round(v * float64(MaxInt(bits))))
}

// QuantizeAll quantizes every sample of src.
func QuantizeAll(src []float32, bits int) []int {
	out := make([]int, len(src))
	for i, x := range src {
		out[i] = Quantize(x, bits)
	}
	return out
}

// FloatBits stores float samples as the int32 bit patterns a 32-bit
// integer writer emits unchanged.
func FloatBits(src []float32) []int {
	out := make([]int, len(src))
	for i, x := range src {
		out[i] = int(int32(math.Float32bits(x)))
	}
	return out
}

// FromFloatBits reverses FloatBits.
func FromFloatBits(src []int) []float32 {
	out := make([]float32, len(src))
	for i, v := range src {
		out[i] = math.Float32frombits(uint32(int32(v)))
	}
	return out
}

// WholeFrames truncates samples to a multiple of channels, dropping a
// trailing partial frame.
func WholeFrames(samples []float32, channels int) []float32 {
	if channels <= 0 {
		return samples
	}
	return samples[:len(samples)-len(samples)%channels]
}
