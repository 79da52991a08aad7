// Package key estimates the key of a note sequence with the
// Krumhansl-Schmuckler profile method.
//
// A pitch-class histogram of the input is correlated against the major and
// minor Krumhansl-Kessler profiles in all twelve rotations; the best
// correlation wins. The result feeds the score-construction collaborator's
// key signature; it is advisory and never an error.
package key

import "math"

// Mode distinguishes major from minor keys.
type Mode int

const (
	ModeMajor Mode = iota
	ModeMinor
)

// String returns "major" or "minor".
func (m Mode) String() string {
	if m == ModeMinor {
		return "minor"
	}
	return "major"
}

// Estimate is a detected key with its profile correlation.
type Estimate struct {
	Tonic      int     // pitch class 0..11, 0 = C
	Mode       Mode    //
	Name       string  // e.g. "C major", "F# minor"
	Confidence float64 // Pearson correlation with the winning profile, -1..1
}

// Krumhansl-Kessler probe-tone profiles.
var (
	majorProfile = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

var pitchClassNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Detect estimates the key of a sequence of integer MIDI notes. An empty
// input yields "C major" with zero confidence.
func Detect(midiNotes []int) Estimate {
	if len(midiNotes) == 0 {
		return Estimate{Name: "C major"}
	}

	var histogram [12]float64
	for _, n := range midiNotes {
		histogram[((n%12)+12)%12]++
	}

	best := Estimate{Confidence: math.Inf(-1)}
	for tonic := 0; tonic < 12; tonic++ {
		if r := correlate(histogram, majorProfile, tonic); r > best.Confidence {
			best = Estimate{Tonic: tonic, Mode: ModeMajor, Confidence: r}
		}
		if r := correlate(histogram, minorProfile, tonic); r > best.Confidence {
			best = Estimate{Tonic: tonic, Mode: ModeMinor, Confidence: r}
		}
	}
	best.Name = pitchClassNames[best.Tonic] + " " + best.Mode.String()
	return best
}

// correlate computes the Pearson correlation between the histogram and the
// profile rotated to the given tonic.
func correlate(histogram, profile [12]float64, tonic int) float64 {
	var meanH, meanP float64
	for i := 0; i < 12; i++ {
		meanH += histogram[i]
		meanP += profile[i]
	}
	meanH /= 12
	meanP /= 12

	var num, denH, denP float64
	for i := 0; i < 12; i++ {
		dh := histogram[(tonic+i)%12] - meanH
		dp := profile[i] - meanP
		num += dh * dp
		denH += dh * dh
		denP += dp * dp
	}
	if denH == 0 || denP == 0 {
		return 0
	}
	return num / math.Sqrt(denH*denP)
}
