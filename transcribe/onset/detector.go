package onset

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-transcribe/internal/window"
)

// Detector produces ordered, deduplicated onset times in seconds for a
// complete audio buffer.
type Detector interface {
	Detect(audio []float64, sampleRate float64) ([]float64, error)
}

// Config holds spectral-flux detector parameters.
type Config struct {
	// FFTSize is the STFT frame length in samples.
	FFTSize int
	// HopSize is the STFT hop in samples.
	HopSize int
	// PeakDelta is the amount by which a novelty peak must exceed the
	// local novelty mean to count as an onset (novelty is normalized to
	// peak 1 beforehand).
	PeakDelta float64
	// MinSeparation is the minimum distance between onsets in seconds.
	MinSeparation float64
	// Backtrack moves each detected peak back to the nearest preceding
	// local minimum of the frame energy.
	Backtrack bool
	// Window selects the analysis window applied to each STFT frame.
	Window window.Type
}

// DefaultConfig returns detector defaults suitable for monophonic
// instrument recordings.
func DefaultConfig() Config {
	return Config{
		FFTSize:       2048,
		HopSize:       512,
		PeakDelta:     0.07,
		MinSeparation: 0.05,
		Backtrack:     true,
		Window:        window.TypeHann,
	}
}

func normalizeConfig(cfg Config) Config {
	def := DefaultConfig()
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = def.FFTSize
	}
	if cfg.HopSize <= 0 {
		cfg.HopSize = def.HopSize
	}
	if cfg.PeakDelta <= 0 {
		cfg.PeakDelta = def.PeakDelta
	}
	if cfg.MinSeparation <= 0 {
		cfg.MinSeparation = def.MinSeparation
	}
	return cfg
}

// SpectralFlux is a spectral-novelty onset detector.
//
// Novelty is the half-wave-rectified frame-to-frame magnitude difference of
// a windowed STFT (Hann by default). Peaks above an adaptive threshold are
// reported as onsets, optionally backtracked to the energy minimum that
// precedes them.
type SpectralFlux struct {
	cfg  Config
	win  []float64
	plan *algofft.Plan[complex128]
}

// NewSpectralFlux creates a detector with the given configuration.
// Zero-valued fields fall back to DefaultConfig. The FFT size must be a
// power of two and not smaller than the hop size.
func NewSpectralFlux(cfg Config) (*SpectralFlux, error) {
	cfg = normalizeConfig(cfg)
	if cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return nil, fmt.Errorf("onset FFT size must be a power of two: %d", cfg.FFTSize)
	}
	if cfg.HopSize > cfg.FFTSize {
		return nil, fmt.Errorf("onset hop size must not exceed FFT size: %d > %d", cfg.HopSize, cfg.FFTSize)
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("onset FFT plan: %w", err)
	}

	return &SpectralFlux{
		cfg:  cfg,
		win:  window.Generate(cfg.Window, cfg.FFTSize, window.WithPeriodic()),
		plan: plan,
	}, nil
}

// Detect returns ordered, deduplicated onset times covering the buffer.
// An empty buffer yields no onsets and no error.
func (d *SpectralFlux) Detect(audio []float64, sampleRate float64) ([]float64, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("onset sample rate must be > 0: %f", sampleRate)
	}
	if len(audio) == 0 {
		return nil, nil
	}

	novelty, energy := d.noveltyCurve(audio)
	if len(novelty) == 0 {
		return nil, nil
	}

	peaks := d.pickPeaks(novelty, sampleRate)
	if d.cfg.Backtrack {
		for i, p := range peaks {
			peaks[i] = backtrackToMinimum(energy, p)
		}
	}

	times := make([]float64, 0, len(peaks))
	for _, p := range peaks {
		times = append(times, float64(p*d.cfg.HopSize)/sampleRate)
	}
	return sortAndDedupe(times), nil
}

// noveltyCurve computes the spectral flux and per-frame energy of the
// buffer. The tail frame is zero-padded.
func (d *SpectralFlux) noveltyCurve(audio []float64) (novelty, energy []float64) {
	fftSize := d.cfg.FFTSize
	bins := fftSize/2 + 1
	numFrames := 1 + (len(audio)-1)/d.cfg.HopSize

	frame := make([]float64, fftSize)
	inData := make([]complex128, fftSize)
	outData := make([]complex128, fftSize)
	re := make([]float64, bins)
	im := make([]float64, bins)
	mag := make([]float64, bins)
	prev := make([]float64, bins)

	novelty = make([]float64, numFrames)
	energy = make([]float64, numFrames)

	for n := 0; n < numFrames; n++ {
		start := n * d.cfg.HopSize
		copied := copy(frame, audio[start:])
		for i := copied; i < fftSize; i++ {
			frame[i] = 0
		}

		sumSq := 0.0
		for _, v := range frame[:copied] {
			sumSq += v * v
		}
		energy[n] = sumSq

		vecmath.MulBlockInPlace(frame, d.win)
		for i, v := range frame {
			inData[i] = complex(v, 0)
		}
		if err := d.plan.Forward(outData, inData); err != nil {
			// Plan and buffer sizes are fixed at construction time.
			continue
		}

		for i := 0; i < bins; i++ {
			re[i] = real(outData[i])
			im[i] = imag(outData[i])
		}
		vecmath.Magnitude(mag, re, im)

		if n > 0 {
			flux := 0.0
			for i := 0; i < bins; i++ {
				if diff := mag[i] - prev[i]; diff > 0 {
					flux += diff
				}
			}
			novelty[n] = flux
		}
		copy(prev, mag)
	}

	normalizePeak(novelty)
	return novelty, energy
}

// pickPeaks selects local novelty maxima that exceed the local mean by the
// configured delta, enforcing the minimum onset separation.
func (d *SpectralFlux) pickPeaks(novelty []float64, sampleRate float64) []int {
	const (
		maxRadius  = 3  // frames checked for the local-maximum test
		meanRadius = 10 // frames averaged for the adaptive threshold
	)

	minGapFrames := int(d.cfg.MinSeparation * sampleRate / float64(d.cfg.HopSize))
	var peaks []int
	lastPeak := -1

	for i := range novelty {
		if novelty[i] <= 0 {
			continue
		}
		if !isLocalMax(novelty, i, maxRadius) {
			continue
		}
		if novelty[i] < localMean(novelty, i, meanRadius)+d.cfg.PeakDelta {
			continue
		}
		if lastPeak >= 0 && i-lastPeak < minGapFrames {
			continue
		}
		peaks = append(peaks, i)
		lastPeak = i
	}
	return peaks
}

func isLocalMax(data []float64, i, radius int) bool {
	lo := i - radius
	if lo < 0 {
		lo = 0
	}
	hi := i + radius + 1
	if hi > len(data) {
		hi = len(data)
	}
	for j := lo; j < hi; j++ {
		if data[j] > data[i] {
			return false
		}
	}
	return true
}

func localMean(data []float64, i, radius int) float64 {
	lo := i - radius
	if lo < 0 {
		lo = 0
	}
	hi := i + radius + 1
	if hi > len(data) {
		hi = len(data)
	}
	sum := 0.0
	for j := lo; j < hi; j++ {
		sum += data[j]
	}
	return sum / float64(hi-lo)
}

// backtrackToMinimum walks from the peak toward the start of the buffer
// until the energy stops decreasing, returning the index of the preceding
// local minimum.
func backtrackToMinimum(energy []float64, peak int) int {
	i := peak
	if i >= len(energy) {
		i = len(energy) - 1
	}
	for i > 0 && energy[i-1] < energy[i] {
		i--
	}
	return i
}

func normalizePeak(data []float64) {
	maxVal := 0.0
	for _, v := range data {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		return
	}
	for i := range data {
		data[i] /= maxVal
	}
}
