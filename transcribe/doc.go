// Package transcribe converts a monophonic pitch contour into discrete,
// rhythmically quantized notes.
//
// The pipeline is a synchronous batch chain over a completed recording:
// onset segmentation (spectral flux with a pitch-change fallback), note
// aggregation, and rhythm quantization against an explicit tempo context.
// Transposition to an instrument's written pitch and key estimation are
// separate pure steps in the transpose and key subpackages.
//
// Each call is self-contained; there is no shared mutable state, so
// parallel transcriptions simply make parallel calls.
package transcribe
