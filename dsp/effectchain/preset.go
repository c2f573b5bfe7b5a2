package effectchain

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/effect"
)

// MarshalJSON encodes the chain as an array of effect objects in order.
func (c *Chain) MarshalJSON() ([]byte, error) {
	if len(c.effects) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(c.effects)
}

// Decode builds a chain from the JSON array written by MarshalJSON. Effect
// types are resolved through reg. Nothing is returned unless every entry
// decodes.
func Decode(reg *effect.Registry, data []byte, opts ...Option) (*Chain, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &core.Error{Kind: core.KindSerialization, Detail: "chain preset must be an array", Err: err}
	}

	fxs := make([]effect.Effect, 0, len(entries))
	for i, raw := range entries {
		fx, err := reg.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("effectchain: preset entry %d: %w", i, err)
		}
		fxs = append(fxs, fx)
	}

	c := New(opts...)
	for _, fx := range fxs {
		c.Add(fx)
	}
	return c, nil
}

// MarshalYAML encodes the chain as a YAML sequence. Fields keep the order of
// the JSON form: type, id, enabled, then the parameters.
func (c *Chain) MarshalYAML() ([]byte, error) {
	doc := make([]yaml.MapSlice, 0, len(c.effects))
	for _, e := range c.effects {
		item := yaml.MapSlice{
			{Key: "type", Value: e.Type()},
			{Key: "id", Value: e.ID()},
			{Key: "enabled", Value: e.Enabled()},
		}
		values := e.Params()
		for _, p := range e.Spec() {
			item = append(item, yaml.MapItem{Key: p.Name, Value: p.Encode(values[p.Name])})
		}
		doc = append(doc, item)
	}
	return yaml.Marshal(doc)
}

// DecodeYAML builds a chain from a YAML sequence of effect mappings.
func DecodeYAML(reg *effect.Registry, data []byte, opts ...Option) (*Chain, error) {
	var entries []map[string]any
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, &core.Error{Kind: core.KindSerialization, Detail: "chain preset must be a YAML sequence", Err: err}
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, &core.Error{Kind: core.KindSerialization, Detail: "convert YAML preset", Err: err}
	}
	return Decode(reg, raw, opts...)
}
