// Package pitchtrack holds the frame-wise pitch contour consumed by the
// transcription pipeline.
//
// A track is an ordered sequence of (time, frequency, confidence) frames as
// delivered by an external fundamental-frequency estimator. The package
// provides Hz/MIDI conversion, confidence filtering and median smoothing of
// the frequency contour; it performs no segmentation or quantization itself.
package pitchtrack
