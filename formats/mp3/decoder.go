// Package mp3 imports MPEG-1/2 Layer III files as float32 buffers.
//
// The decoder always yields 16-bit stereo; mono streams are duplicated onto
// both channels.
package mp3

import (
	"encoding/binary"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/formats/internal/pcm"
)

const channels = 2

// Decoder decodes MP3 streams. It satisfies formats.Decoder.
type Decoder struct{}

// Decode implements formats.Decoder.
func (Decoder) Decode(r io.ReadSeeker) (*buffer.Buffer, error) { return Decode(r) }

// Decode reads a complete MP3 stream from r.
func Decode(r io.Reader) (*buffer.Buffer, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"sample_rate": dec.SampleRate(),
		"bytes":       len(data),
	}).Debug("mp3 decoded")

	return fromPCM16(data, dec.SampleRate())
}

// fromPCM16 converts interleaved little-endian int16 stereo bytes.
func fromPCM16(data []byte, sampleRate int) (*buffer.Buffer, error) {
	ints := make([]int, len(data)/2)
	for i := range ints {
		ints[i] = int(int16(binary.LittleEndian.Uint16(data[2*i:])))
	}
	samples := pcm.WholeFrames(pcm.Normalize(ints, 16), channels)
	return buffer.New(samples, channels, sampleRate)
}
