package transcribe

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-transcribe/internal/testutil"
	"github.com/cwbudde/algo-transcribe/transcribe/quantize"
)

var tempo120 = quantize.TempoContext{BPM: 120, Meter: quantize.Meter{Numerator: 4, Denominator: 4}}

func TestRunEndToEndTwoNotes(t *testing.T) {
	// 40 frames at MIDI 60 over 0.0-0.4 s, then 40 frames at MIDI 64 over
	// 0.4-0.8 s, no detected onsets: the fallback yields boundaries at 0.0
	// and 0.4, aggregation two notes, and quantization blends both onto
	// the sixteenth grid at 80% strength (beat = 0.5 s at 120 BPM).
	track := append(
		testutil.ConstantPitchFrames(60, 0.9, 0, 0.4, 40),
		testutil.ConstantPitchFrames(64, 0.9, 0.4, 0.8, 40)...,
	)

	res, err := Run(nil, track, tempo120, WithDetector(nil))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, res.Boundaries, []float64{0, 0.4}, 1e-12)

	if len(res.Raw) != 2 {
		t.Fatalf("raw notes = %v, want 2", res.Raw)
	}
	if res.Raw[0].Pitch != 60 || res.Raw[1].Pitch != 64 {
		t.Fatalf("raw pitches = %d %d, want 60 64", res.Raw[0].Pitch, res.Raw[1].Pitch)
	}
	testutil.RequireNear(t, res.Raw[0].Duration, 0.4, 1e-9)
	testutil.RequireNear(t, res.Raw[1].Duration, 0.39, 1e-9)

	if len(res.Notes) != 2 {
		t.Fatalf("quantized notes = %v, want 2", res.Notes)
	}
	// Second note: rawStartBeat 0.8, nearest grid point 0.75, blended
	// 0.8*0.2 + 0.75*0.8 = 0.76.
	testutil.RequireNear(t, res.Notes[0].StartBeat, 0, 1e-12)
	testutil.RequireNear(t, res.Notes[1].StartBeat, 0.76, 1e-9)
	testutil.RequireNear(t, res.Notes[0].DurationBeats, 0.76, 1e-9)
	testutil.RequireNear(t, res.Notes[1].DurationBeats, 0.756, 1e-9)
}

func TestRunEmptyInput(t *testing.T) {
	res, err := Run(nil, nil, tempo120)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(res.Boundaries) != 0 || len(res.Raw) != 0 || len(res.Notes) != 0 {
		t.Fatalf("empty input produced output: %+v", res)
	}
}

func TestRunAllLowConfidenceYieldsNoNotes(t *testing.T) {
	track := testutil.ConstantPitchFrames(60, 0.1, 0, 0.4, 40)
	res, err := Run(nil, track, tempo120, WithDetector(nil), WithConfidenceThreshold(0.5))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(res.Notes) != 0 {
		t.Fatalf("low-confidence input produced notes: %v", res.Notes)
	}
}

func TestRunRejectsBadTempo(t *testing.T) {
	track := testutil.ConstantPitchFrames(60, 0.9, 0, 0.4, 40)
	for _, bpm := range []float64{0, -1, math.NaN()} {
		tempo := quantize.TempoContext{BPM: bpm, Meter: quantize.Meter{Numerator: 4, Denominator: 4}}
		if _, err := Run(nil, track, tempo, WithDetector(nil)); err == nil {
			t.Fatalf("expected error for tempo %f", bpm)
		}
	}
}

func TestRunRejectsInvalidTrack(t *testing.T) {
	track := testutil.ConstantPitchFrames(60, 0.9, 0, 0.4, 4)
	track[2].Time = 0 // out of order
	if _, err := Run(nil, track, tempo120, WithDetector(nil)); err == nil {
		t.Fatalf("expected error for unordered track")
	}
}

func TestRunStrengthZeroKeepsRawTiming(t *testing.T) {
	track := testutil.ConstantPitchFrames(62, 0.9, 0.07, 0.43, 36)
	res, err := Run(nil, track, tempo120, WithDetector(nil), WithStrength(0))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(res.Notes) != 1 {
		t.Fatalf("notes = %v, want 1", res.Notes)
	}
	testutil.RequireNear(t, res.Notes[0].StartBeat, res.Raw[0].Start/0.5, 1e-12)
}

func TestPitches(t *testing.T) {
	track := append(
		testutil.ConstantPitchFrames(60, 0.9, 0, 0.4, 40),
		testutil.ConstantPitchFrames(67, 0.9, 0.4, 0.8, 40)...,
	)
	res, err := Run(nil, track, tempo120, WithDetector(nil))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	got := res.Pitches()
	if len(got) != 2 || got[0] != 60 || got[1] != 67 {
		t.Fatalf("pitches = %v, want [60 67]", got)
	}
}
