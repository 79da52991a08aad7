// Package testutil provides shared helpers for package tests:
// tolerance assertions and deterministic pitch-track / audio generators.
package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-transcribe/transcribe/pitchtrack"
)

// RequireNear fails t if got differs from want by more than eps.
func RequireNear(t *testing.T, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Fatalf("got %v, want %v (diff %v > eps %v)", got, want, math.Abs(got-want), eps)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("index %d: got %v, want %v (eps %v)", i, got[i], want[i], eps)
		}
	}
}

// ConstantPitchFrames generates n equally spaced frames at a fixed MIDI
// note over [start, end) with the given confidence.
func ConstantPitchFrames(midi float64, confidence, start, end float64, n int) pitchtrack.Track {
	track := make(pitchtrack.Track, n)
	step := (end - start) / float64(n)
	freq := pitchtrack.MIDIToHz(midi)
	for i := range track {
		track[i] = pitchtrack.Frame{
			Time:       start + float64(i)*step,
			Frequency:  freq,
			Confidence: confidence,
		}
	}
	return track
}

// Sine generates a sine tone at the given frequency and amplitude.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// ToneBursts generates silence-separated sine bursts, one per frequency.
// Each burst lasts burstLen samples followed by gapLen samples of silence.
// The result starts with gapLen samples of silence so every burst has a
// clean attack.
func ToneBursts(freqs []float64, sampleRate float64, burstLen, gapLen int) []float64 {
	out := make([]float64, 0, gapLen+len(freqs)*(burstLen+gapLen))
	out = append(out, make([]float64, gapLen)...)
	for _, f := range freqs {
		out = append(out, Sine(f, sampleRate, 0.8, burstLen)...)
		out = append(out, make([]float64, gapLen)...)
	}
	return out
}
