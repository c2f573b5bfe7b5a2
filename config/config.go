// Package config loads the YAML settings of a processing run: rates, block
// size, export depth, logging, and the effect chain.
package config

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/effect"
	"github.com/cwbudde/nueva/dsp/effectchain"
)

// EffectConfig is one chain entry in preset form: type, id, enabled, and
// the effect's parameters.
type EffectConfig map[string]any

// Config is the settings file.
type Config struct {
	SampleRate     int            `yaml:"sample_rate"`
	BlockSize      int            `yaml:"block_size"`
	ExportBitDepth int            `yaml:"export_bit_depth"`
	LogLevel       string         `yaml:"log_level"`
	LogFormat      string         `yaml:"log_format"`
	Chain          []EffectConfig `yaml:"chain,omitempty"`
}

var (
	bitDepths  = []int{16, 24, 32}
	logFormats = []string{"text", "json"}
)

// Default returns the settings used for keys a file leaves out.
func Default() Config {
	p := core.DefaultProcessorConfig()
	return Config{
		SampleRate:     p.SampleRate,
		BlockSize:      p.BlockSize,
		ExportBitDepth: 24,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load reads and validates the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &core.Error{Kind: core.KindConfig, Path: path, Err: err}
	}
	cfg, err := Parse(data)
	if err != nil {
		var e *core.Error
		if errors.As(err, &e) {
			e.Path = path
		}
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.DisallowUnknownField()); err != nil {
		return Config{}, &core.Error{Kind: core.KindConfig, Detail: "decode yaml", Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every scalar setting. Chain entries are checked by
// BuildChain.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0 || c.SampleRate > 768000:
		return core.Errorf(core.KindConfig, "sample_rate %d outside [1, 768000]", c.SampleRate)
	case c.BlockSize <= 0 || c.BlockSize > 1<<20:
		return core.Errorf(core.KindConfig, "block_size %d outside [1, %d]", c.BlockSize, 1<<20)
	case !slices.Contains(bitDepths, c.ExportBitDepth):
		return core.Errorf(core.KindConfig, "export_bit_depth %d is not one of 16, 24, 32", c.ExportBitDepth)
	case !slices.Contains(logFormats, c.LogFormat):
		return core.Errorf(core.KindConfig, "log_format %q is not text or json", c.LogFormat)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return &core.Error{Kind: core.KindConfig, Detail: "log_level", Err: err}
	}
	return nil
}

// ProcessorOptions bridges the rate and block size to core options.
func (c Config) ProcessorOptions() []core.ProcessorOption {
	return []core.ProcessorOption{
		core.WithSampleRate(c.SampleRate),
		core.WithBlockSize(c.BlockSize),
	}
}

// BuildChain instantiates the chain entries against reg in order.
func (c Config) BuildChain(reg *effect.Registry, opts ...effectchain.Option) (*effectchain.Chain, error) {
	if len(c.Chain) == 0 {
		return effectchain.New(opts...), nil
	}
	data, err := json.Marshal(c.Chain)
	if err != nil {
		return nil, &core.Error{Kind: core.KindConfig, Detail: "encode chain", Err: err}
	}
	return effectchain.Decode(reg, data, opts...)
}

// NewLogger returns a logger writing to out at the configured level and
// format.
func (c Config) NewLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		l.SetLevel(level)
	}
	if c.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return l
}

// Marshal encodes c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
