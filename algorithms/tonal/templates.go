package tonal

import (
	"github.com/RyanBlaney/sonido-clave/algorithms/chroma"
)

// TemplateTable holds the reference profile of every (scale, root) pair:
// 9 scales x 12 roots = 108 templates. It is built once at startup and is
// immutable afterward, so a single table can be shared across concurrent
// detections without locking.
type TemplateTable struct {
	profiles [][]chroma.Profile // [scale index][root index]
}

// NewTemplateTable generates all reference profiles from the supported
// scale definitions.
func NewTemplateTable() *TemplateTable {
	profiles := make([][]chroma.Profile, len(Scales))

	for si, def := range Scales {
		profiles[si] = make([]chroma.Profile, chroma.NumPitchClasses)
		for root := C; root <= B; root++ {
			profiles[si][root] = NewProfile(GenerateScale(root, def.Intervals))
		}
	}

	return &TemplateTable{profiles: profiles}
}

// Profile returns the template for the given scale index and root
func (t *TemplateTable) Profile(scaleIdx int, root Note) chroma.Profile {
	return t.profiles[scaleIdx][root]
}

// Len returns the total number of templates
func (t *TemplateTable) Len() int {
	return len(t.profiles) * chroma.NumPitchClasses
}
