// Package formats imports audio files by extension. WAV, AIFF, MP3 and Ogg
// Vorbis decoders are registered by default; export is WAV only (see
// formats/wav).
package formats

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/formats/aiff"
	"github.com/cwbudde/nueva/formats/mp3"
	"github.com/cwbudde/nueva/formats/vorbis"
	"github.com/cwbudde/nueva/formats/wav"
)

// Decoder turns a complete encoded stream into a buffer.
type Decoder interface {
	Decode(r io.ReadSeeker) (*buffer.Buffer, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(r io.ReadSeeker) (*buffer.Buffer, error)

// Decode calls f(r).
func (f DecoderFunc) Decode(r io.ReadSeeker) (*buffer.Buffer, error) { return f(r) }

// Registry maps lowercase file extensions (without the dot) to decoders.
// It is safe for concurrent use.
type Registry struct {
	codecs map[string]Decoder

	mtx sync.Mutex
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// Register binds d to ext, replacing any previous decoder.
func (r *Registry) Register(ext string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalizeExt(ext)] = d
}

// Get returns the decoder bound to ext.
func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[normalizeExt(ext)]
	return d, ok
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	exts := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Load decodes the file at path with the decoder bound to its extension.
// Open and decode failures are read errors carrying path; an unknown
// extension is an unsupported-format error.
func (r *Registry) Load(path string) (*buffer.Buffer, error) {
	ext := filepath.Ext(path)
	d, ok := r.Get(ext)
	if !ok {
		return nil, &core.Error{
			Kind:   core.KindUnsupportedFormat,
			Path:   path,
			Detail: "no decoder for extension " + strings.ToLower(ext),
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, core.ReadError(path, err)
	}
	defer f.Close()

	buf, err := d.Decode(f)
	if err != nil {
		return nil, readError(path, err)
	}
	return buf, nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// DefaultRegistry returns a registry with every built-in decoder.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, ext := range []string{"wav", "wave"} {
		r.Register(ext, wav.Decoder{})
	}
	for _, ext := range []string{"aif", "aiff"} {
		r.Register(ext, aiff.Decoder{})
	}
	r.Register("mp3", mp3.Decoder{})
	for _, ext := range []string{"ogg", "oga"} {
		r.Register(ext, vorbis.Decoder{})
	}
	return r
}

var defaultRegistry = DefaultRegistry()

// Load decodes path with the default registry.
func Load(path string) (*buffer.Buffer, error) {
	return defaultRegistry.Load(path)
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
