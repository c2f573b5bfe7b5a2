// Package effectchain owns an ordered list of effects and runs a buffer
// through them in place.
//
// Order defines signal flow. Disabled effects are bypassed. Processing is
// fail-fast: the first effect to return an error stops the chain, and the
// buffer keeps whatever the preceding effects already did to it.
//
// Effect ids are not required to be unique. Lookups by id (Get, Remove,
// Move) act on the first match in chain order.
package effectchain
