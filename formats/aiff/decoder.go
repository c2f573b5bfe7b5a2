// Package aiff imports AIFF files as float32 buffers.
package aiff

import (
	"errors"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/formats/internal/pcm"
)

const chunkSamples = 4096

var errNotAiff = errors.New("not an AIFF file")

// pcmReader is the part of aiff.Decoder Decode needs after the header.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Decoder decodes AIFF streams. It satisfies formats.Decoder.
type Decoder struct{}

// Decode implements formats.Decoder.
func (Decoder) Decode(r io.ReadSeeker) (*buffer.Buffer, error) { return Decode(r) }

// Decode reads a complete AIFF stream from r.
func Decode(r io.ReadSeeker) (*buffer.Buffer, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errNotAiff
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, errNotAiff
	}
	bits := int(dec.BitDepth)
	switch bits {
	case 8, 16, 24, 32:
	default:
		return nil, core.Errorf(core.KindUnsupportedFormat, "%d-bit AIFF", bits)
	}

	data, err := readAll(dec, format)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"sample_rate": format.SampleRate,
		"channels":    format.NumChannels,
		"bit_depth":   bits,
	}).Debug("aiff decoded")

	samples := pcm.WholeFrames(pcm.Normalize(data, bits), format.NumChannels)
	return buffer.New(samples, format.NumChannels, format.SampleRate)
}

func readAll(dec pcmReader, format *goaudio.Format) ([]int, error) {
	chunk := &goaudio.IntBuffer{Format: format, Data: make([]int, chunkSamples)}
	var out []int
	for {
		n, err := dec.PCMBuffer(chunk)
		out = append(out, chunk.Data[:n]...)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if n == 0 || err != nil {
			return out, nil
		}
	}
}
