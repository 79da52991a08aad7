package transcribe

import (
	"github.com/cwbudde/algo-transcribe/transcribe/notes"
	"github.com/cwbudde/algo-transcribe/transcribe/onset"
	"github.com/cwbudde/algo-transcribe/transcribe/quantize"
)

// Config defines the fixed parameters of one transcription run.
type Config struct {
	SampleRate          float64
	ConfidenceThreshold float64
	SmoothingWindow     int
	MinNoteDuration     float64
	Strength            float64
	Subdivisions        int

	detector    onset.Detector
	detectorSet bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the pipeline defaults: 44.1 kHz audio, no extra
// confidence filtering or smoothing (the pitch estimator is expected to
// deliver a pre-filtered track), a 0.1 s minimum note duration, and
// sixteenth-grid quantization at 80% strength.
func DefaultConfig() Config {
	return Config{
		SampleRate:      44100,
		MinNoteDuration: notes.DefaultMinDuration,
		Strength:        quantize.DefaultStrength,
		Subdivisions:    quantize.DefaultSubdivisions,
	}
}

// WithSampleRate sets the audio sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithConfidenceThreshold drops pitch frames at or below the given
// confidence before segmentation.
func WithConfidenceThreshold(threshold float64) Option {
	return func(cfg *Config) {
		if threshold >= 0 && threshold <= 1 {
			cfg.ConfidenceThreshold = threshold
		}
	}
}

// WithSmoothingWindow median-filters the frequency contour with the given
// odd window size before segmentation.
func WithSmoothingWindow(window int) Option {
	return func(cfg *Config) {
		if window >= 0 {
			cfg.SmoothingWindow = window
		}
	}
}

// WithMinNoteDuration sets the minimum note duration in seconds; shorter
// notes are dropped during aggregation and the quantized duration never
// falls below it.
func WithMinNoteDuration(seconds float64) Option {
	return func(cfg *Config) {
		if seconds >= 0 {
			cfg.MinNoteDuration = seconds
		}
	}
}

// WithStrength sets the quantization strength in [0,1].
func WithStrength(strength float64) Option {
	return func(cfg *Config) {
		if strength >= 0 && strength <= 1 {
			cfg.Strength = strength
		}
	}
}

// WithSubdivisions sets the number of quantization grid points per beat.
func WithSubdivisions(subdivisions int) Option {
	return func(cfg *Config) {
		if subdivisions > 0 {
			cfg.Subdivisions = subdivisions
		}
	}
}

// WithDetector replaces the default spectral-flux onset detector. Passing
// nil skips onset detection entirely, forcing the pitch-change fallback.
func WithDetector(det onset.Detector) Option {
	return func(cfg *Config) {
		cfg.detector = det
		cfg.detectorSet = true
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
