package wav

import (
	"errors"
	"io"
	"os"

	gowav "github.com/go-audio/wav"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/formats/internal/pcm"
)

// WAVE format tags.
const (
	formatPCM        = 1
	formatFloat      = 3
	formatExtensible = 0xFFFE
)

var errNotWav = errors.New("not a RIFF/WAVE file")

// Decoder decodes WAV streams. It satisfies formats.Decoder.
type Decoder struct{}

// Decode implements formats.Decoder.
func (Decoder) Decode(r io.ReadSeeker) (*buffer.Buffer, error) { return Decode(r) }

// Load reads the WAV file at path. Failures carry the path and the
// underlying cause.
func Load(path string) (*buffer.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.ReadError(path, err)
	}
	defer f.Close()

	buf, err := Decode(f)
	if err != nil {
		return nil, readError(path, err)
	}
	return buf, nil
}

// Decode reads a complete WAV stream from r.
func Decode(r io.ReadSeeker) (*buffer.Buffer, error) {
	dec := gowav.NewDecoder(r)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, err
		}
		return nil, errNotWav
	}

	data, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	channels := int(dec.NumChans)
	rate := int(dec.SampleRate)
	bits := int(dec.BitDepth)

	samples, err := toFloat(data.Data, bits, int(dec.WavAudioFormat))
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"sample_rate": rate,
		"channels":    channels,
		"bit_depth":   bits,
		"format":      dec.WavAudioFormat,
	}).Debug("wav decoded")

	return buffer.New(pcm.WholeFrames(samples, channels), channels, rate)
}

func toFloat(data []int, bits, format int) ([]float32, error) {
	switch format {
	case formatFloat:
		if bits != 32 {
			return nil, core.Errorf(core.KindUnsupportedFormat, "%d-bit float WAV", bits)
		}
		return pcm.FromFloatBits(data), nil
	case formatPCM, formatExtensible:
		switch bits {
		case 8:
			return pcm.NormalizeUnsigned8(data), nil
		case 16, 24, 32:
			return pcm.Normalize(data, bits), nil
		}
		return nil, core.Errorf(core.KindUnsupportedFormat, "%d-bit PCM WAV", bits)
	}
	return nil, core.Errorf(core.KindUnsupportedFormat, "WAV format tag %#x", format)
}

// readError tags a decode failure with path. Unsupported-format errors keep
// their kind.
func readError(path string, err error) error {
	var e *core.Error
	if errors.As(err, &e) && e.Kind == core.KindUnsupportedFormat {
		if e.Path == "" {
			e.Path = path
		}
		return err
	}
	return core.ReadError(path, err)
}
