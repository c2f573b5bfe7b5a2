package effect

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/nueva/dsp/core"
)

// Factory builds an effect with default parameters and the given id.
type Factory func(id string) Effect

// Registry maps effect type tags to their factories.
type Registry struct {
	factories map[string]Factory
}

var errDuplicateEffect = errors.New("duplicate effect type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given effect type.
func (r *Registry) Register(effectType string, factory Factory) error {
	if effectType == "" {
		return errors.New("empty effect type")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[effectType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, effectType)
	}

	r.factories[effectType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(effectType string, factory Factory) {
	err := r.Register(effectType, factory)
	if err != nil {
		panic("effect registry: " + err.Error())
	}
}

// Lookup returns the factory for the given effect type, or nil.
func (r *Registry) Lookup(effectType string) Factory {
	return r.factories[effectType]
}

// Types lists the registered type tags in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// New builds an effect of the given type. An empty id defaults to the type tag.
func (r *Registry) New(effectType, id string) (Effect, error) {
	factory := r.factories[effectType]
	if factory == nil {
		return nil, &core.Error{Kind: core.KindUnknownEffect, ID: effectType}
	}
	if id == "" {
		id = effectType
	}
	return factory(id), nil
}

// Decode rebuilds an effect from its JSON form. The "type" field selects
// the factory; every other field is applied through UnmarshalJSON.
func (r *Registry) Decode(data []byte) (Effect, error) {
	var head struct {
		Type *string `json:"type"`
		ID   string  `json:"id"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, &core.Error{Kind: core.KindSerialization, Detail: "decode effect", Err: err}
	}
	if head.Type == nil {
		return nil, &core.Error{Kind: core.KindSerialization, Detail: "effect is missing its type"}
	}

	fx, err := r.New(*head.Type, head.ID)
	if err != nil {
		return nil, err
	}
	if err := fx.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return fx, nil
}
