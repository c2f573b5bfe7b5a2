package effect

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/nueva/dsp/core"
)

// ValueKind selects how a parameter is validated and serialized.
type ValueKind int

const (
	// Number is a continuous value in [Min, Max].
	Number ValueKind = iota
	// Bool is stored as 0 or 1 and serialized as a JSON boolean.
	Bool
	// Choice is stored as an index into Choices and serialized as its name.
	Choice
)

// Param documents one named parameter of an effect.
type Param struct {
	Name    string
	Kind    ValueKind
	Min     float64
	Max     float64
	Default float64
	Unit    string
	Choices []string
}

// Num declares a numeric parameter.
func Num(name string, lo, hi, def float64, unit string) Param {
	return Param{Name: name, Kind: Number, Min: lo, Max: hi, Default: def, Unit: unit}
}

// Flag declares a boolean parameter.
func Flag(name string, def bool) Param {
	p := Param{Name: name, Kind: Bool, Min: 0, Max: 1}
	if def {
		p.Default = 1
	}
	return p
}

// Enum declares a choice parameter whose default is choices[def].
func Enum(name string, def int, choices ...string) Param {
	return Param{
		Name: name, Kind: Choice,
		Min: 0, Max: float64(len(choices) - 1),
		Default: float64(def), Choices: choices,
	}
}

// Validate checks v against the parameter's kind and bounds.
func (p Param) Validate(v float64) error {
	if !core.IsFinite(v) || v < p.Min || v > p.Max {
		return core.ParamError(p.Name, v, p.Min, p.Max)
	}
	if p.Kind != Number && v != math.Trunc(v) {
		return core.ParamError(p.Name, v, p.Min, p.Max)
	}
	return nil
}

// ChoiceName returns the choice label for index v.
func (p Param) ChoiceName(v float64) string {
	i := int(v)
	if p.Kind != Choice || i < 0 || i >= len(p.Choices) {
		return ""
	}
	return p.Choices[i]
}

// Range renders the accepted values for listings.
func (p Param) Range() string {
	switch p.Kind {
	case Bool:
		return "true|false"
	case Choice:
		return strings.Join(p.Choices, "|")
	default:
		b, _ := json.Marshal([2]float64{p.Min, p.Max})
		return string(b)
	}
}

// Encode returns the serialized form of v: a bool, a choice name, or the number.
func (p Param) Encode(v float64) any {
	switch p.Kind {
	case Bool:
		return v != 0
	case Choice:
		return p.ChoiceName(v)
	default:
		return v
	}
}

// decode converts one JSON value into the stored numeric form and validates it.
func (p Param) decode(raw json.RawMessage) (float64, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return 0, typeError(p.Name, "null")
	}

	switch p.Kind {
	case Bool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return 0, typeError(p.Name, "a boolean")
		}
		if b {
			return 1, nil
		}
		return 0, nil

	case Choice:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, typeError(p.Name, "a string")
		}
		for i, c := range p.Choices {
			if strings.EqualFold(c, s) {
				return float64(i), nil
			}
		}
		return 0, &core.Error{
			Kind: core.KindInvalidParameter, Param: p.Name, Min: p.Min, Max: p.Max,
			Detail: "unknown choice " + strconv.Quote(s) + ", want one of " + p.Range(),
		}

	default:
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0, typeError(p.Name, "a number")
		}
		return v, p.Validate(v)
	}
}

func typeError(name, want string) error {
	return &core.Error{Kind: core.KindSerialization, Param: name, Detail: name + " must be " + want}
}

// Params is the closed parameter table of one effect type.
type Params []Param

// Index returns the position of name, or -1.
func (ps Params) Index(name string) int {
	for i := range ps {
		if ps[i].Name == name {
			return i
		}
	}
	return -1
}

// Lookup returns the parameter called name.
func (ps Params) Lookup(name string) (Param, bool) {
	i := ps.Index(name)
	if i < 0 {
		return Param{}, false
	}
	return ps[i], true
}

// Validate checks a single name/value pair against the table.
func (ps Params) Validate(name string, v float64) error {
	p, ok := ps.Lookup(name)
	if !ok {
		return core.UnknownParamError(name)
	}
	return p.Validate(v)
}
