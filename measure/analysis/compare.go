package analysis

import (
	"fmt"
	"math"
)

// Delta is the level change between two reports, after minus before, in dB.
type Delta struct {
	RMSdB         float64
	PeakdB        float64
	CrestFactorDB float64
}

// Compare returns the level change from before to after. A change from or
// to silence is reported as an infinite delta.
func Compare(before, after Report) Delta {
	return Delta{
		RMSdB:         diffDB(after.RMSdB, before.RMSdB),
		PeakdB:        diffDB(after.PeakdB, before.PeakdB),
		CrestFactorDB: after.CrestFactorDB - before.CrestFactorDB,
	}
}

// diffDB is a-b with silence-to-silence defined as no change.
func diffDB(a, b float64) float64 {
	if math.IsInf(a, -1) && math.IsInf(b, -1) {
		return 0
	}
	return a - b
}

func (d Delta) String() string {
	return fmt.Sprintf("RMS %+.1f dB | Peak %+.1f dB | Crest %+.1f dB", d.RMSdB, d.PeakdB, d.CrestFactorDB)
}
