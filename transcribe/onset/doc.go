// Package onset derives note boundary times for the transcription pipeline.
//
// The primary path is a spectral-flux novelty detector over a Hann-windowed
// STFT, with peaks backtracked to the nearest preceding local energy
// minimum. When the detector reports no onsets, segmentation falls back to
// scanning the pitch track for semitone-sized jumps, so any non-empty track
// always yields at least one boundary.
package onset
