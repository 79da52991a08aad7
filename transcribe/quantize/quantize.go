package quantize

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-transcribe/transcribe/notes"
)

const (
	// DefaultStrength blends 80% toward the grid by default.
	DefaultStrength = 0.8
	// DefaultSubdivisions is the number of grid points per quarter-note
	// beat; four gives a sixteenth-note grid regardless of the meter
	// denominator.
	DefaultSubdivisions = 4
)

// Meter is a time signature.
type Meter struct {
	Numerator   int
	Denominator int
}

// TempoContext carries the tempo and meter for one quantize call. It is a
// plain value: callers running transcriptions in parallel pass independent
// contexts instead of sharing quantizer state.
type TempoContext struct {
	BPM   float64
	Meter Meter
}

// Validate reports whether the context can drive a quantize call: a
// positive, finite tempo and a meter with numerator >= 1 and a
// power-of-two denominator.
func (tc TempoContext) Validate() error {
	if tc.BPM <= 0 || math.IsNaN(tc.BPM) || math.IsInf(tc.BPM, 0) {
		return fmt.Errorf("tempo must be a positive finite BPM: %f", tc.BPM)
	}
	if tc.Meter.Numerator < 1 {
		return fmt.Errorf("meter numerator must be >= 1: %d", tc.Meter.Numerator)
	}
	d := tc.Meter.Denominator
	if d < 1 || d&(d-1) != 0 {
		return fmt.Errorf("meter denominator must be a power of two >= 1: %d", d)
	}
	return nil
}

// BeatDuration returns the duration of one quarter-note beat in seconds.
func (tc TempoContext) BeatDuration() float64 {
	return 60 / tc.BPM
}

// Config holds quantization parameters.
type Config struct {
	// Strength blends between raw (0) and hard-snapped (1) timing.
	Strength float64
	// Subdivisions is the number of grid points per beat.
	Subdivisions int
	// MinDuration is the floor, in seconds, below which no snapped note
	// duration may fall.
	MinDuration float64
}

// DefaultConfig returns the default quantization parameters.
func DefaultConfig() Config {
	return Config{
		Strength:     DefaultStrength,
		Subdivisions: DefaultSubdivisions,
		MinDuration:  notes.DefaultMinDuration,
	}
}

func normalizeConfig(cfg Config) Config {
	if cfg.Strength < 0 {
		cfg.Strength = 0
	}
	if cfg.Strength > 1 {
		cfg.Strength = 1
	}
	if cfg.Subdivisions <= 0 {
		cfg.Subdivisions = DefaultSubdivisions
	}
	if cfg.MinDuration < 0 {
		cfg.MinDuration = 0
	}
	return cfg
}

// Note is a raw note with its timing mapped onto the beat grid.
type Note struct {
	notes.RawNote
	StartBeat     float64
	DurationBeats float64
}

// Apply maps each raw note onto the beat grid of the given tempo context.
//
// Start and duration are converted to beats, snapped toward the nearest
// grid point at the configured strength, floored at
// MinDuration/beatDuration, and converted back to seconds. The context is
// validated before any arithmetic runs.
func Apply(raw []notes.RawNote, tempo TempoContext, cfg Config) ([]Note, error) {
	if err := tempo.Validate(); err != nil {
		return nil, err
	}
	cfg = normalizeConfig(cfg)

	beatDuration := tempo.BeatDuration()
	grid := 1 / float64(cfg.Subdivisions)
	minDurationBeats := cfg.MinDuration / beatDuration

	out := make([]Note, 0, len(raw))
	for _, n := range raw {
		startBeat := snap(n.Start/beatDuration, grid, cfg.Strength)
		durationBeats := snap(n.Duration/beatDuration, grid, cfg.Strength)
		if durationBeats < minDurationBeats {
			durationBeats = minDurationBeats
		}

		q := Note{
			RawNote:       n,
			StartBeat:     startBeat,
			DurationBeats: durationBeats,
		}
		q.Start = startBeat * beatDuration
		q.Duration = durationBeats * beatDuration
		out = append(out, q)
	}
	return out, nil
}

// snap blends value toward the nearest grid multiple at the given strength.
func snap(value, grid, strength float64) float64 {
	snapped := math.Round(value/grid) * grid
	return value*(1-strength) + snapped*strength
}
