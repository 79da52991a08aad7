// Command transcribe converts a recorded monophonic melody into quantized
// notes, ready for score construction or MIDI playback.
//
// The pitch contour is supplied as a JSON file of
// (time, frequency, confidence) frames from an external pitch estimator;
// the audio itself is optional and only improves onset detection.
package main

func main() {
	Execute()
}
