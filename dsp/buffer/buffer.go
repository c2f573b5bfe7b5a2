package buffer

import (
	"math"
	"time"

	"github.com/cwbudde/nueva/dsp/core"
)

// Buffer holds interleaved float32 samples together with their channel
// count and sample rate. len(Samples()) is always a whole number of frames.
type Buffer struct {
	samples    []float32
	channels   int
	sampleRate int
}

// New wraps samples without copying. It fails with an invalid-buffer error
// when channels or sampleRate is not positive, or when the sample count is
// not a multiple of channels.
func New(samples []float32, channels, sampleRate int) (*Buffer, error) {
	if channels <= 0 {
		return nil, core.Errorf(core.KindInvalidBuffer, "channels must be >= 1, got %d", channels)
	}
	if sampleRate <= 0 {
		return nil, core.Errorf(core.KindInvalidBuffer, "sample rate must be > 0, got %d", sampleRate)
	}
	if len(samples)%channels != 0 {
		return nil, core.Errorf(core.KindInvalidBuffer,
			"%d samples do not form whole frames of %d channels", len(samples), channels)
	}
	if samples == nil {
		samples = []float32{}
	}

	return &Buffer{samples: samples, channels: channels, sampleRate: sampleRate}, nil
}

// Zeroed returns a silent buffer of the given shape.
func Zeroed(frames, channels, sampleRate int) (*Buffer, error) {
	if frames < 0 {
		return nil, core.Errorf(core.KindInvalidBuffer, "frames must be >= 0, got %d", frames)
	}
	if channels <= 0 {
		return New(nil, channels, sampleRate)
	}
	return New(make([]float32, frames*channels), channels, sampleRate)
}

// Samples returns the interleaved backing slice.
func (b *Buffer) Samples() []float32 { return b.samples }

// Channels returns the channel count.
func (b *Buffer) Channels() int { return b.channels }

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// Len returns the total number of samples across all channels.
func (b *Buffer) Len() int { return len(b.samples) }

// Frames returns the number of sample frames.
func (b *Buffer) Frames() int { return len(b.samples) / b.channels }

// IsEmpty reports whether the buffer holds no frames.
func (b *Buffer) IsEmpty() bool { return len(b.samples) == 0 }

// Seconds returns the duration in seconds.
func (b *Buffer) Seconds() float64 {
	return float64(b.Frames()) / float64(b.sampleRate)
}

// Duration returns the duration as a time.Duration.
func (b *Buffer) Duration() time.Duration {
	return time.Duration(b.Seconds() * float64(time.Second))
}

// At returns the sample of channel ch at frame i.
func (b *Buffer) At(i, ch int) float32 { return b.samples[i*b.channels+ch] }

// Set stores v as the sample of channel ch at frame i.
func (b *Buffer) Set(i, ch int, v float32) { b.samples[i*b.channels+ch] = v }

// Channel returns a de-interleaved copy of one channel.
func (b *Buffer) Channel(ch int) []float32 {
	if ch < 0 || ch >= b.channels {
		return nil
	}
	out := make([]float32, b.Frames())
	for i := range out {
		out[i] = b.samples[i*b.channels+ch]
	}
	return out
}

// Float64 returns a widened copy of the samples for float64 math routines.
func (b *Buffer) Float64() []float64 {
	out := make([]float64, len(b.samples))
	for i, v := range b.samples {
		out[i] = float64(v)
	}
	return out
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	s := make([]float32, len(b.samples))
	copy(s, b.samples)
	return &Buffer{samples: s, channels: b.channels, sampleRate: b.sampleRate}
}

// ApplyGain multiplies every sample by linear, in place.
func (b *Buffer) ApplyGain(linear float32) {
	for i := range b.samples {
		b.samples[i] *= linear
	}
}

// ApplyGainDB multiplies every sample by 10^(db/20), in place.
func (b *Buffer) ApplyGainDB(db float64) {
	b.ApplyGain(float32(core.DBToLinear(db)))
}

// IsIdenticalTo reports an exact match of shape and sample values.
func (b *Buffer) IsIdenticalTo(other *Buffer) bool {
	if !b.sameShape(other) {
		return false
	}
	for i, v := range b.samples {
		if v != other.samples[i] {
			return false
		}
	}
	return true
}

// IsApproxEqual reports whether shapes match and every sample pair differs
// by less than tolerance.
func (b *Buffer) IsApproxEqual(other *Buffer, tolerance float64) bool {
	if !b.sameShape(other) {
		return false
	}
	for i, v := range b.samples {
		if math.Abs(float64(v)-float64(other.samples[i])) >= tolerance {
			return false
		}
	}
	return true
}

func (b *Buffer) sameShape(other *Buffer) bool {
	return other != nil &&
		b.channels == other.channels &&
		b.sampleRate == other.sampleRate &&
		len(b.samples) == len(other.samples)
}

// Peak returns the largest absolute sample value.
func (b *Buffer) Peak() float64 {
	var peak float64
	for _, v := range b.samples {
		if a := math.Abs(float64(v)); a > peak {
			peak = a
		}
	}
	return peak
}

// PeakDB returns Peak in dBFS.
func (b *Buffer) PeakDB() float64 { return core.LinearToDB(b.Peak()) }

// RMS returns the root mean square over all samples. An empty buffer has RMS 0.
func (b *Buffer) RMS() float64 {
	if len(b.samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range b.samples {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(b.samples)))
}

// RMSDB returns RMS in dBFS.
func (b *Buffer) RMSDB() float64 { return core.LinearToDB(b.RMS()) }

// Slice returns a view of frames [start, end) that shares the backing
// array. Bounds are clamped to the buffer.
func (b *Buffer) Slice(start, end int) *Buffer {
	frames := b.Frames()
	start = min(max(start, 0), frames)
	end = min(max(end, start), frames)
	return &Buffer{
		samples:    b.samples[start*b.channels : end*b.channels],
		channels:   b.channels,
		sampleRate: b.sampleRate,
	}
}
