package effects

import (
	"math"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/effect"
)

// TypeSaturation is the registry tag of Saturation.
const TypeSaturation = "saturation"

// Curve selects the waveshaper of a Saturation.
type Curve int

const (
	// CurveTape is tanh drive with a slight even-harmonic asymmetry.
	CurveTape Curve = iota
	// CurveTube is the soft knee x/(1+|x|^(1+drive)).
	CurveTube
	// CurveTransistor is a harder odd-harmonic rational clipper.
	CurveTransistor
	// CurveHardClip amplifies and clips at full scale.
	CurveHardClip
)

var saturationParams = effect.Params{
	effect.Num("drive", 0, 1, 0.5, ""),
	effect.Enum("curve", int(CurveTape), "tape", "tube", "transistor", "hardclip"),
	effect.Num("mix", 0, 1, 1, ""),
	effect.Num("output_gain_db", -24, 24, 0, "dB"),
}

// Saturation is a stateless waveshaping distortion with dry/wet mix.
type Saturation struct {
	effect.Base

	drive      float64
	curve      Curve
	mix        float64
	outputGain float64
}

// NewSaturation returns a tape saturation at half drive, fully wet.
func NewSaturation(id string) *Saturation {
	s := &Saturation{}
	s.Init(TypeSaturation, id, saturationParams, s.apply)
	return s
}

func (s *Saturation) apply(name string, v float64) {
	switch name {
	case "drive":
		s.drive = v
	case "curve":
		s.curve = Curve(v)
	case "mix":
		s.mix = v
	case "output_gain_db":
		s.outputGain = core.DBToLinear(v)
	}
}

// Shape applies the selected curve to one sample.
func (s *Saturation) Shape(x float64) float64 {
	d := s.drive
	switch s.curve {
	case CurveTube:
		return x / (1 + math.Pow(math.Abs(x), 1+d))
	case CurveTransistor:
		driven := x * (1 + 3*d)
		return driven / (1 + math.Abs(driven))
	case CurveHardClip:
		return core.Clamp(x*(1+10*d), -1, 1)
	default:
		shaped := math.Tanh(x * (1 + 4*d))
		return shaped + 0.1*d*shaped*shaped
	}
}

// Prepare only validates its arguments.
func (s *Saturation) Prepare(sampleRate, maxBlockSize int) error {
	return core.ValidatePrepare(sampleRate, maxBlockSize)
}

// Process shapes every sample in place. A mix of zero leaves the buffer
// untouched.
func (s *Saturation) Process(buf *buffer.Buffer) error {
	if s.mix == 0 {
		return nil
	}

	dryMix, wetMix := 1-s.mix, s.mix
	samples := buf.Samples()
	for i, x := range samples {
		dry := float64(x)
		wet := s.Shape(dry)
		samples[i] = core.ToSample((dry*dryMix + wet*wetMix) * s.outputGain)
	}
	return nil
}

// Reset is a no-op.
func (s *Saturation) Reset() {}
