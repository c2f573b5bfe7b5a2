package wav

import (
	"errors"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/formats/internal/pcm"
)

// Save writes buf to path as 32-bit IEEE float. Samples are stored
// unmodified.
func Save(path string, buf *buffer.Buffer) error {
	return write(path, buf, 32, formatFloat, pcm.FloatBits(buf.Samples()))
}

// SaveWithDepth writes buf as integer PCM of the given depth. Samples are
// clamped to [-1, 1] and scaled by 2^(depth-1)-1. A depth of 32 writes
// float instead, like Save.
func SaveWithDepth(path string, buf *buffer.Buffer, depth int) error {
	switch depth {
	case 16, 24:
		return write(path, buf, depth, formatPCM, pcm.QuantizeAll(buf.Samples(), depth))
	case 32:
		return Save(path, buf)
	}
	return &core.Error{
		Kind:   core.KindUnsupportedFormat,
		Path:   path,
		Detail: "bit depth must be 16, 24 or 32",
	}
}

func write(path string, buf *buffer.Buffer, bits, format int, data []int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return core.WriteError(path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = core.WriteError(path, cerr)
		}
	}()

	enc := gowav.NewEncoder(f, buf.SampleRate(), bits, buf.Channels(), format)
	werr := enc.Write(&goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: buf.Channels(),
			SampleRate:  buf.SampleRate(),
		},
		Data:           data,
		SourceBitDepth: bits,
	})
	if err := errors.Join(werr, enc.Close()); err != nil {
		return core.WriteError(path, err)
	}

	logrus.WithFields(logrus.Fields{
		"path":        path,
		"sample_rate": buf.SampleRate(),
		"channels":    buf.Channels(),
		"frames":      buf.Frames(),
		"bit_depth":   bits,
	}).Debug("wav encoded")
	return nil
}
