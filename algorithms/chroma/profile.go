package chroma

import "gonum.org/v1/gonum/floats"

// NumPitchClasses is the size of the chromatic pitch-class circle
const NumPitchClasses = 12

// noteNames in canonical chromatic order, index 0 = C
var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Profile is a pitch-class distribution indexed by chromatic position
// (0=C ... 11=B). A populated profile sums to 1.0; an all-zero profile
// signals that no pitched content was observed.
type Profile [NumPitchClasses]float64

// Sum returns the total mass of the profile
func (p *Profile) Sum() float64 {
	return floats.Sum(p[:])
}

// Max returns the largest bin value and its chromatic index.
// Ties resolve to the lowest index.
func (p *Profile) Max() (float64, int) {
	idx := floats.MaxIdx(p[:])
	return p[idx], idx
}

// Normalize scales the profile to sum 1.0 in place. A zero-mass profile
// is left unchanged so silence stays representable.
func (p *Profile) Normalize() {
	total := p.Sum()
	if total == 0 {
		return
	}
	floats.Scale(1.0/total, p[:])
}

// PitchClassName returns the canonical name for a chromatic index
func PitchClassName(pc int) string {
	return noteNames[((pc%NumPitchClasses)+NumPitchClasses)%NumPitchClasses]
}
