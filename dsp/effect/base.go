package effect

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/cwbudde/nueva/dsp/core"
)

// ApplyFunc receives a parameter that already passed validation. It updates
// the effect's typed fields and any coefficients derived from them.
type ApplyFunc func(name string, value float64)

// Base implements identity, the enable flag, and the parameter surface of
// Effect. Concrete effects embed it and call Init from their constructor.
type Base struct {
	typ     string
	id      string
	enabled bool
	spec    Params
	values  []float64
	apply   ApplyFunc
}

// Init sets identity and pushes every parameter default through apply.
// New effects start enabled.
func (b *Base) Init(typ, id string, spec Params, apply ApplyFunc) {
	b.typ = typ
	b.id = id
	b.enabled = true
	b.spec = spec
	b.apply = apply
	b.values = make([]float64, len(spec))
	for i, p := range spec {
		b.values[i] = p.Default
		apply(p.Name, p.Default)
	}
}

// ID returns the instance id used to address the effect in a chain.
func (b *Base) ID() string { return b.id }

// SetID renames the instance.
func (b *Base) SetID(id string) { b.id = id }

// Type returns the registry tag.
func (b *Base) Type() string { return b.typ }

// Enabled reports whether the chain runs the effect.
func (b *Base) Enabled() bool { return b.enabled }

// SetEnabled toggles bypass.
func (b *Base) SetEnabled(enabled bool) { b.enabled = enabled }

// Spec returns the parameter table.
func (b *Base) Spec() Params { return b.spec }

// Param returns the current value of one parameter.
func (b *Base) Param(name string) (float64, bool) {
	i := b.spec.Index(name)
	if i < 0 {
		return 0, false
	}
	return b.values[i], true
}

// Params returns a snapshot of all parameter values.
func (b *Base) Params() map[string]float64 {
	out := make(map[string]float64, len(b.spec))
	for i, p := range b.spec {
		out[p.Name] = b.values[i]
	}
	return out
}

// SetParam validates value and applies it. On error nothing changes.
func (b *Base) SetParam(name string, value float64) error {
	i := b.spec.Index(name)
	if i < 0 {
		return core.UnknownParamError(name)
	}
	if err := b.spec[i].Validate(value); err != nil {
		return err
	}
	b.values[i] = value
	b.apply(name, value)
	return nil
}

// MarshalJSON writes {"type", "id", "enabled", <params in table order>}.
func (b *Base) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeField(&buf, "type", b.typ, true)
	writeField(&buf, "id", b.id, false)
	writeField(&buf, "enabled", b.enabled, false)
	for i, p := range b.spec {
		writeField(&buf, p.Name, p.Encode(b.values[i]), false)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key string, v any, first bool) {
	if !first {
		buf.WriteByte(',')
	}
	k, _ := json.Marshal(key)
	val, _ := json.Marshal(v)
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(val)
}

type assignment struct {
	index int
	value float64
}

// UnmarshalJSON applies a serialized parameter object. Absent fields keep
// their current values. Every present field is decoded and validated before
// the first one is applied, so a bad document leaves the effect untouched.
func (b *Base) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &core.Error{Kind: core.KindSerialization, ID: b.id, Detail: "decode " + b.typ, Err: err}
	}
	if raw == nil {
		return &core.Error{Kind: core.KindSerialization, ID: b.id, Detail: b.typ + " parameters must be an object"}
	}

	var (
		id      *string
		enabled *bool
		updates []assignment
	)

	for key, msg := range raw {
		switch key {
		case "type":
			var typ string
			if err := json.Unmarshal(msg, &typ); err != nil {
				return typeError(key, "a string")
			}
			if typ != b.typ {
				return &core.Error{Kind: core.KindSerialization, ID: b.id,
					Detail: "type " + typ + " does not match " + b.typ}
			}
		case "id":
			var s string
			if err := json.Unmarshal(msg, &s); err != nil || isNull(msg) {
				return typeError(key, "a string")
			}
			id = &s
		case "enabled":
			var e bool
			if err := json.Unmarshal(msg, &e); err != nil || isNull(msg) {
				return typeError(key, "a boolean")
			}
			enabled = &e
		default:
			i := b.spec.Index(key)
			if i < 0 {
				return core.UnknownParamError(key)
			}
			v, err := b.spec[i].decode(msg)
			if err != nil {
				return err
			}
			updates = append(updates, assignment{index: i, value: v})
		}
	}

	sort.Slice(updates, func(i, j int) bool { return updates[i].index < updates[j].index })

	if id != nil {
		b.id = *id
	}
	if enabled != nil {
		b.enabled = *enabled
	}
	for _, u := range updates {
		b.values[u.index] = u.value
		b.apply(b.spec[u.index].Name, u.value)
	}
	return nil
}

func isNull(msg json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}
