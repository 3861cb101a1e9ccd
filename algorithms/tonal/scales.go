package tonal

import (
	"fmt"

	"github.com/RyanBlaney/sonido-clave/algorithms/chroma"
)

// Note is a chromatic pitch class in canonical order, index 0 = C.
// The ordering doubles as the tie-break order during classification.
type Note int

const (
	C Note = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Valid reports whether n is one of the 12 chromatic pitch classes
func (n Note) Valid() bool {
	return n >= C && n <= B
}

func (n Note) String() string {
	if !n.Valid() {
		return fmt.Sprintf("Note(%d)", int(n))
	}
	return noteNames[n]
}

// ParseNote resolves a canonical note name ("C", "F#", ...) to its pitch class
func ParseNote(s string) (Note, error) {
	for i, name := range noteNames {
		if name == s {
			return Note(i), nil
		}
	}
	return 0, fmt.Errorf("unknown note name: %q", s)
}

// ScaleCategory splits the supported scales into keys and modes
type ScaleCategory int

const (
	CategoryKey ScaleCategory = iota
	CategoryMode
)

func (c ScaleCategory) String() string {
	switch c {
	case CategoryKey:
		return "Key"
	case CategoryMode:
		return "Mode"
	default:
		return "Unknown"
	}
}

// ScaleDefinition is a named sequence of 7 semitone steps around the
// chromatic circle plus its reporting category.
type ScaleDefinition struct {
	Name      string        `json:"name"`
	Intervals []int         `json:"intervals"`
	Category  ScaleCategory `json:"category"`
}

// Scales lists every supported scale in declaration order. The order is
// load-bearing: classification builds its candidate list from it, and the
// stable ranking sort preserves it among equal scores.
var Scales = []ScaleDefinition{
	{Name: "Major", Intervals: []int{2, 2, 1, 2, 2, 2, 1}, Category: CategoryKey},
	{Name: "Natural Minor", Intervals: []int{2, 1, 2, 2, 1, 2, 2}, Category: CategoryKey},
	{Name: "Harmonic Minor", Intervals: []int{2, 1, 2, 2, 1, 3, 1}, Category: CategoryKey},
	{Name: "Melodic Minor", Intervals: []int{2, 1, 2, 2, 2, 2, 1}, Category: CategoryKey},
	{Name: "Dorian", Intervals: []int{2, 1, 2, 2, 2, 1, 2}, Category: CategoryMode},
	{Name: "Phrygian", Intervals: []int{1, 2, 2, 2, 1, 2, 2}, Category: CategoryMode},
	{Name: "Lydian", Intervals: []int{2, 2, 2, 1, 2, 2, 1}, Category: CategoryMode},
	{Name: "Mixolydian", Intervals: []int{2, 2, 1, 2, 2, 1, 2}, Category: CategoryMode},
	{Name: "Locrian", Intervals: []int{1, 2, 2, 1, 2, 2, 2}, Category: CategoryMode},
}

// ScaleByName looks up a supported scale definition
func ScaleByName(name string) (ScaleDefinition, error) {
	for _, def := range Scales {
		if def.Name == name {
			return def, nil
		}
	}
	return ScaleDefinition{}, fmt.Errorf("unknown scale: %q", name)
}

// GenerateScale walks the interval steps cyclically from root and returns
// root plus the 7 derived notes (8 total). The steps of the supported
// scales sum to 12, so the final note wraps back to the root, but callers
// must not rely on that closure for arbitrary interval sets.
//
// An out-of-range root is a contract violation and panics.
func GenerateScale(root Note, intervals []int) []Note {
	if !root.Valid() {
		panic(fmt.Sprintf("tonal: root %d outside the chromatic set", int(root)))
	}

	scale := make([]Note, 0, len(intervals)+1)
	scale = append(scale, root)

	index := int(root)
	for _, step := range intervals {
		index = (index + step) % chroma.NumPitchClasses
		scale = append(scale, Note(index))
	}

	return scale
}

// NewProfile builds the reference pitch-class profile of a scale: every
// distinct note receives equal weight 1/k, where k is the number of
// distinct notes present (repeats collapse).
func NewProfile(scale []Note) chroma.Profile {
	var profile chroma.Profile

	for _, note := range scale {
		profile[int(note)%chroma.NumPitchClasses] = 1
	}

	profile.Normalize()
	return profile
}
