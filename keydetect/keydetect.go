// Package keydetect estimates the musical key or mode of a recording from
// its averaged spectral content.
//
// The pipeline is: overlapping Hann-windowed FFT segments averaged into one
// magnitude spectrum, folded into a 12-bin pitch-class profile, then matched
// against reference templates for every root and supported scale. A single
// dominant pitch class short-circuits to a single-tone report.
package keydetect

import (
	"fmt"

	"github.com/RyanBlaney/sonido-clave/algorithms/chroma"
	"github.com/RyanBlaney/sonido-clave/algorithms/spectral"
	"github.com/RyanBlaney/sonido-clave/algorithms/tonal"
	"github.com/RyanBlaney/sonido-clave/logging"
	"github.com/RyanBlaney/sonido-clave/transcode"
)

// Result is the outcome of one detection: the classification plus the
// averaged spectrum it was derived from, kept for diagnostic plotting.
type Result struct {
	tonal.Result

	Profile  chroma.Profile          `json:"profile"`
	Spectrum *spectral.SpectrumFrame `json:"-"`
}

// Detector runs the detection pipeline. The template table is built once
// at construction and shared read-only, so a single Detector is safe for
// concurrent use across recordings.
type Detector struct {
	config     *Config
	analyzer   *spectral.Analyzer
	folder     *chroma.Folder
	classifier *tonal.Classifier
}

// NewDetector creates a detector with the reference parameters
func NewDetector() *Detector {
	d, _ := NewDetectorWithConfig(DefaultConfig())
	return d
}

// NewDetectorWithConfig creates a detector with custom parameters
func NewDetectorWithConfig(config *Config) (*Detector, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detector config: %w", err)
	}

	analyzer, err := spectral.NewAnalyzerWithParams(config.WindowSize, config.HopSize)
	if err != nil {
		return nil, err
	}

	return &Detector{
		config:     config,
		analyzer:   analyzer,
		folder:     chroma.NewFolderWithRange(config.MinFreq, config.MaxFreq),
		classifier: tonal.NewClassifierWithThreshold(tonal.NewTemplateTable(), config.SingleToneThreshold),
	}, nil
}

// Config returns the detector's analysis parameters
func (d *Detector) Config() Config {
	return *d.config
}

// Detect estimates the key of a mono sample sequence. Degenerate input
// (short or silent) never fails; it resolves deterministically through the
// classifier's tie-break.
func (d *Detector) Detect(samples []float64, sampleRate int) *Result {
	logger := logging.WithFields(logging.Fields{
		"component":   "key_detector",
		"function":    "Detect",
		"samples":     len(samples),
		"sample_rate": sampleRate,
	})

	frame := d.analyzer.Analyze(samples, sampleRate)
	profile := d.folder.Fold(frame)
	classification := d.classifier.Classify(profile)

	logger.Debug("Detection completed", logging.Fields{
		"kind":  classification.Kind.String(),
		"root":  classification.Root.String(),
		"scale": classification.Scale,
		"score": classification.Score,
	})

	return &Result{
		Result:   classification,
		Profile:  profile,
		Spectrum: frame,
	}
}

// DetectAudio runs detection on decoded audio
func (d *Detector) DetectAudio(audio *transcode.AudioData) *Result {
	return d.Detect(audio.PCM, audio.SampleRate)
}
