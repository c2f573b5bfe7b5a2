// Package buffer provides the interleaved float32 signal buffer shared by
// every effect, codec, and analysis routine in the module.
//
// A Buffer owns its samples. Effects mutate it in place; callers that need
// an untouched reference for comparison take an explicit Clone first.
package buffer
