package chroma

import (
	"math"

	"github.com/RyanBlaney/sonido-clave/algorithms/spectral"
)

// Folding range: the audible musical band considered for key detection.
// Bins outside (including DC) are ignored entirely.
const (
	DefaultMinFreq = 20.0
	DefaultMaxFreq = 5000.0
)

// referenceA4 anchors the equal-tempered MIDI mapping at A4 = 440 Hz
const referenceA4 = 440.0

// Folder accumulates spectral magnitude into the 12 chromatic pitch classes
type Folder struct {
	minFreq float64
	maxFreq float64
}

// NewFolder creates a folder over the default 20-5000 Hz musical range
func NewFolder() *Folder {
	return &Folder{
		minFreq: DefaultMinFreq,
		maxFreq: DefaultMaxFreq,
	}
}

// NewFolderWithRange creates a folder over a custom inclusive frequency range
func NewFolderWithRange(minFreq, maxFreq float64) *Folder {
	return &Folder{
		minFreq: minFreq,
		maxFreq: maxFreq,
	}
}

// Fold maps every in-range frequency bin of the spectrum to its nearest
// equal-tempered pitch class and accumulates the bin's magnitude there.
// The result is normalized to sum 1.0, or all-zero for a silent spectrum.
func (f *Folder) Fold(frame *spectral.SpectrumFrame) Profile {
	var profile Profile

	for i, freq := range frame.Frequencies {
		if freq < f.minFreq || freq > f.maxFreq {
			continue
		}
		profile[PitchClassForFrequency(freq)] += frame.Magnitudes[i]
	}

	profile.Normalize()
	return profile
}

// PitchClassForFrequency returns the chromatic index (0=C ... 11=B) of the
// equal-tempered pitch nearest to freq. MIDI note 69 is A4; MIDI pitch
// classes already align with the C-anchored chromatic ordering.
func PitchClassForFrequency(freq float64) int {
	midi := 69.0 + NumPitchClasses*math.Log2(freq/referenceA4)
	pc := int(math.Round(midi)) % NumPitchClasses
	if pc < 0 {
		pc += NumPitchClasses
	}
	return pc
}

// NoteForFrequency returns the canonical note name nearest to freq.
// Shared by the spectrum plot's note axis.
func NoteForFrequency(freq float64) string {
	return PitchClassName(PitchClassForFrequency(freq))
}
