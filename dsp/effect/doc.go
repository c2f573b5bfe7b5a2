// Package effect defines the contract shared by every processing stage and
// the machinery behind it: the closed per-effect parameter tables, the
// single validation boundary that turns untyped name/value or JSON input
// into typed updates, and the type-tag registry used to rebuild effects
// from serialized presets.
//
// Concrete effects live in dsp/effects and its subpackages. They embed Base
// for identity and parameter handling and implement Prepare, Process and
// Reset themselves.
package effect
