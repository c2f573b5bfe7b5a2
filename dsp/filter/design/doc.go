// Package design provides RBJ cookbook biquad coefficient designers.
//
// The functions in this package produce coefficients consumable by
// dsp/filter/biquad for runtime processing.
package design
