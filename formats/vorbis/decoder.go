// Package vorbis imports Ogg Vorbis files as float32 buffers.
package vorbis

import (
	"io"

	"github.com/jfreymuth/oggvorbis"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/formats/internal/pcm"
)

// Decoder decodes Ogg Vorbis streams. It satisfies formats.Decoder.
type Decoder struct{}

// Decode implements formats.Decoder.
func (Decoder) Decode(r io.ReadSeeker) (*buffer.Buffer, error) { return Decode(r) }

// Decode reads a complete Ogg Vorbis stream from r. Vorbis decodes to
// floats, so no normalization is needed.
func Decode(r io.Reader) (*buffer.Buffer, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"sample_rate": format.SampleRate,
		"channels":    format.Channels,
	}).Debug("vorbis decoded")

	return buffer.New(pcm.WholeFrames(samples, format.Channels), format.Channels, format.SampleRate)
}
