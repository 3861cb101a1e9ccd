package transcode

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"

	"github.com/RyanBlaney/sonido-clave/logging"
)

// AudioData represents decoded audio data ready for analysis: a mono PCM
// sequence normalized to [-1, 1] plus its sample rate.
type AudioData struct {
	PCM        []float64     `json:"-"`
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"` // channel count of the source, before downmix
	Duration   time.Duration `json:"duration"`
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	FFmpegPath  string        `json:"ffmpeg_path"`
	FFprobePath string        `json:"ffprobe_path"`
	Timeout     time.Duration `json:"timeout"`
}

// DefaultDecoderConfig returns default decoder configuration
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		FFmpegPath:  "ffmpeg",  // Assume in PATH
		FFprobePath: "ffprobe", // Assume in PATH
		Timeout:     30 * time.Second,
	}
}

// Decoder turns audio files into mono normalized PCM. WAV files are read
// natively; compressed formats (mp3, ogg, flac, ...) go through FFmpeg.
type Decoder struct {
	config *DecoderConfig
}

// NewDecoder creates a new audio decoder
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{config: config}
}

// DecodeFile decodes an audio file into mono normalized PCM
func (d *Decoder) DecodeFile(filename string) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"function":  "DecodeFile",
		"filename":  filename,
	})

	logger.Debug("Starting audio file decode")

	var (
		audio *AudioData
		err   error
	)

	if strings.EqualFold(filepath.Ext(filename), ".wav") {
		audio, err = d.decodeWAV(filename)
	} else {
		audio, err = d.decodeWithFFmpeg(filename)
	}
	if err != nil {
		logger.Error(err, "Audio decode failed")
		return nil, err
	}

	normalizePeak(audio.PCM)

	logger.Debug("Audio decode completed", logging.Fields{
		"samples":     len(audio.PCM),
		"sample_rate": audio.SampleRate,
		"channels":    audio.Channels,
		"duration":    audio.Duration.Seconds(),
	})

	return audio, nil
}

// decodeWAV reads a WAV file with go-audio and keeps the first channel
func (d *Decoder) decodeWAV(filename string) (*AudioData, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open wav file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("not a valid wav file: %s", filename)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read wav data: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}

	// First channel only for multi-channel audio
	frames := len(buf.Data) / channels
	pcm := make([]float64, frames)
	for i := range frames {
		pcm[i] = float64(buf.Data[i*channels])
	}

	sampleRate := buf.Format.SampleRate
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	return &AudioData{
		PCM:        pcm,
		SampleRate: sampleRate,
		Channels:   channels,
		Duration:   time.Duration(frames) * time.Second / time.Duration(sampleRate),
	}, nil
}

// normalizePeak scales samples so the largest |amplitude| is 1.0.
// Silence is left unchanged to avoid dividing by zero.
func normalizePeak(pcm []float64) {
	peak := 0.0
	for _, s := range pcm {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}

	if peak == 0 {
		return
	}

	for i := range pcm {
		pcm[i] /= peak
	}
}

// bytesToFloat64 converts raw f64le bytes to []float64
func bytesToFloat64(data []byte) []float64 {
	if len(data)%8 != 0 {
		// Trim to multiple of 8 bytes
		data = data[:len(data)-(len(data)%8)]
	}

	if len(data) == 0 {
		return nil
	}

	sampleCount := len(data) / 8
	samples := make([]float64, sampleCount)

	for i := range sampleCount {
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		samples[i] = math.Float64frombits(bits)
	}

	return samples
}
