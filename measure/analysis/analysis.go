package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/measure/loudness"
	timestats "github.com/cwbudde/nueva/stats/time"
)

const (
	// ClipThreshold is the absolute sample value counted as clipped.
	ClipThreshold = 0.9999
	// MinPhaseCorrelation is the stereo correlation below which a render
	// is flagged for phase problems.
	MinPhaseCorrelation = 0.2
	// DCOffsetThreshold is the mean above which a render has a DC offset.
	DCOffsetThreshold = 0.01
	// ClipPercentLimit is the share of clipped samples, in percent, above
	// which a render is considered clipping.
	ClipPercentLimit = 1.0
)

// Report summarizes one buffer.
type Report struct {
	RMS           float64
	RMSdB         float64
	Peak          float64
	PeakdB        float64
	CrestFactorDB float64

	ClippedSamples int
	ClipPercent    float64
	DCOffset       float64

	Duration   time.Duration
	SampleRate int
	Channels   int

	// StereoCorrelation is the Pearson correlation of the two channels of
	// a stereo buffer. HasCorrelation is false for other layouts and when
	// either channel is constant.
	StereoCorrelation float64
	HasCorrelation    bool

	// LoudnessLUFS is the gated integrated loudness, -Inf when the buffer
	// is too short, too quiet, or below loudness.MinSampleRate.
	LoudnessLUFS float64
}

// Analyze measures buf.
func Analyze(buf *buffer.Buffer) Report {
	s := buf.Samples()
	st := timestats.Calculate(s)

	r := Report{
		RMS:            st.RMS,
		RMSdB:          core.LinearToDB(st.RMS),
		Peak:           st.Peak,
		PeakdB:         core.LinearToDB(st.Peak),
		CrestFactorDB:  st.CrestFactor_dB,
		ClippedSamples: timestats.CountAbove(s, ClipThreshold),
		DCOffset:       st.DC,
		Duration:       buf.Duration(),
		SampleRate:     buf.SampleRate(),
		Channels:       buf.Channels(),
		LoudnessLUFS:   math.Inf(-1),
	}
	if len(s) > 0 {
		r.ClipPercent = 100 * float64(r.ClippedSamples) / float64(len(s))
	}
	if buf.Channels() == 2 {
		r.StereoCorrelation, r.HasCorrelation = timestats.Correlation(buf.Channel(0), buf.Channel(1))
	}
	if lr, err := loudness.Measure(buf); err == nil {
		r.LoudnessLUFS = lr.Integrated
	}
	return r
}

// IsSilent reports whether the RMS level is below thresholdDB.
func (r Report) IsSilent(thresholdDB float64) bool { return r.RMSdB < thresholdDB }

// IsClipping reports whether more than ClipPercentLimit percent of the
// samples reach ClipThreshold.
func (r Report) IsClipping() bool { return r.ClipPercent > ClipPercentLimit }

// WouldClip reports whether the peak reaches 0 dBFS.
func (r Report) WouldClip() bool { return r.PeakdB >= 0 }

// HasDCOffset reports whether |DCOffset| exceeds DCOffsetThreshold.
func (r Report) HasDCOffset() bool { return math.Abs(r.DCOffset) > DCOffsetThreshold }

// HasPhaseIssues reports a stereo correlation below MinPhaseCorrelation.
func (r Report) HasPhaseIssues() bool {
	return r.HasCorrelation && r.StereoCorrelation < MinPhaseCorrelation
}

// Summary renders the report as a few human-readable lines.
func (r Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Duration: %.2fs | %d ch @ %d Hz\n", r.Duration.Seconds(), r.Channels, r.SampleRate)
	fmt.Fprintf(&b, "RMS: %.1f dBFS | Peak: %.1f dBFS | Crest: %.1f dB\n", r.RMSdB, r.PeakdB, r.CrestFactorDB)
	fmt.Fprintf(&b, "DC Offset: %.4f", r.DCOffset)

	if !math.IsInf(r.LoudnessLUFS, -1) {
		fmt.Fprintf(&b, "\nLoudness: %.1f LUFS", r.LoudnessLUFS)
	}

	if r.ClippedSamples > 0 {
		fmt.Fprintf(&b, "\nClipping: %d samples (%.2f%%)", r.ClippedSamples, r.ClipPercent)
	}
	if r.HasCorrelation {
		fmt.Fprintf(&b, "\nStereo Correlation: %.2f", r.StereoCorrelation)
	}
	return b.String()
}

// Warnings lists the checks the report fails, in a fixed order.
func (r Report) Warnings() []string {
	var w []string
	if r.IsClipping() {
		w = append(w, fmt.Sprintf("clipping: %.2f%% of samples at full scale", r.ClipPercent))
	} else if r.WouldClip() {
		w = append(w, "peak reaches 0 dBFS")
	}
	if r.HasDCOffset() {
		w = append(w, fmt.Sprintf("dc offset %.4f", r.DCOffset))
	}
	if r.HasPhaseIssues() {
		w = append(w, fmt.Sprintf("stereo correlation %.2f", r.StereoCorrelation))
	}
	return w
}
