// Package viz renders diagnostic views of the analysis pipeline. Nothing
// here feeds back into classification.
package viz

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/RyanBlaney/sonido-clave/algorithms/chroma"
	"github.com/RyanBlaney/sonido-clave/algorithms/spectral"
	"github.com/RyanBlaney/sonido-clave/logging"
)

// Note-axis parameters: labels cover the full audible band (wider than the
// 20-5000 Hz folding range) and are thinned to one per kilohertz of spacing
// so they stay readable.
const (
	labelMinFreq = 20.0
	labelMaxFreq = 20000.0
	labelSpacing = 1000.0
)

// NoteLabel pairs a frequency with the chromatic note nearest to it
type NoteLabel struct {
	Freq float64
	Note string
}

// NoteLabels maps a sparse subset of the spectrum's frequencies to their
// nearest chromatic notes, keeping successive labels at least labelSpacing
// apart.
func NoteLabels(frame *spectral.SpectrumFrame) []NoteLabel {
	var labels []NoteLabel

	for _, freq := range frame.Frequencies {
		if freq < labelMinFreq || freq > labelMaxFreq {
			continue
		}
		if len(labels) > 0 && freq-labels[len(labels)-1].Freq <= labelSpacing {
			continue
		}
		labels = append(labels, NoteLabel{
			Freq: freq,
			Note: chroma.NoteForFrequency(freq),
		})
	}

	return labels
}

// SaveSpectrumPlot renders the averaged magnitude spectrum with a sparse
// note overlay and writes it to filename (format from the extension,
// e.g. .png).
func SaveSpectrumPlot(frame *spectral.SpectrumFrame, filename string) error {
	logger := logging.WithFields(logging.Fields{
		"component": "spectrum_plot",
		"function":  "SaveSpectrumPlot",
		"filename":  filename,
	})

	p := plot.New()
	p.Title.Text = "FFT Magnitude Spectrum with Notes"
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "Magnitude"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(frame.Frequencies))
	for i := range xys {
		xys[i].X = frame.Frequencies[i]
		xys[i].Y = frame.Magnitudes[i]
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("failed to build spectrum line: %w", err)
	}
	line.Color = color.RGBA{B: 255, A: 255}
	p.Add(line)
	p.Legend.Add("FFT Magnitude", line)

	if err := addNoteAxis(p, frame); err != nil {
		return err
	}

	if err := p.Save(12*vg.Inch, 7*vg.Inch, filename); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}

	logger.Info("Spectrum plot saved")
	return nil
}

// addNoteAxis overlays the sparse note labels along the top of the plot
func addNoteAxis(p *plot.Plot, frame *spectral.SpectrumFrame) error {
	noteLabels := NoteLabels(frame)
	if len(noteLabels) == 0 {
		return nil
	}

	top := floats.Max(frame.Magnitudes) * 1.02

	xyLabels := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(noteLabels)),
		Labels: make([]string, len(noteLabels)),
	}
	for i, nl := range noteLabels {
		xyLabels.XYs[i] = plotter.XY{X: nl.Freq, Y: top}
		xyLabels.Labels[i] = nl.Note
	}

	labels, err := plotter.NewLabels(xyLabels)
	if err != nil {
		return fmt.Errorf("failed to build note labels: %w", err)
	}
	p.Add(labels)

	return nil
}
