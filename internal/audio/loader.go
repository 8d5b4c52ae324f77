// Package audio turns uploaded audio files into mono waveforms at the sample
// rate the speech model expects.
package audio

import (
	"context"
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// Loader decodes raw audio bytes into a Waveform at a fixed sample rate.
type Loader struct {
	sampleRate int
	tempDir    string
	log        *zap.SugaredLogger
}

// NewLoader creates a loader. An empty tempDir uses the OS default.
func NewLoader(sampleRate int, tempDir string, log *zap.SugaredLogger) *Loader {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Loader{
		sampleRate: sampleRate,
		tempDir:    tempDir,
		log:        log,
	}
}

// SampleRate returns the rate every decoded waveform is converted to.
func (l *Loader) SampleRate() int {
	return l.sampleRate
}

// Load writes data to a temporary file, decodes it and removes the file again.
// The temporary file never outlives the call.
func (l *Loader) Load(ctx context.Context, data []byte) (Waveform, error) {
	if err := ctx.Err(); err != nil {
		return Waveform{}, err
	}

	// The suffix is cosmetic, the container is sniffed from the content.
	tmp, err := os.CreateTemp(l.tempDir, "audio-*.mp3")
	if err != nil {
		return Waveform{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			l.log.Warnw("[Audio] Failed to remove temp file", "path", path, "error", err)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return Waveform{}, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Waveform{}, fmt.Errorf("failed to close temp file: %w", err)
	}

	return l.decodeFile(path)
}

func (l *Loader) decodeFile(path string) (Waveform, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return Waveform{}, fmt.Errorf("failed to detect audio format: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return Waveform{}, fmt.Errorf("failed to open temp file: %w", err)
	}
	defer f.Close()

	var (
		samples []float32
		rate    int
	)
	switch {
	case mtype.Is("audio/wav"):
		samples, rate, err = decodeWAV(f)
	case mtype.Is("audio/mpeg"):
		samples, rate, err = decodeMP3(f)
	case mtype.Is("audio/flac"):
		samples, rate, err = decodeFLAC(f)
	case mtype.Is("audio/ogg"):
		samples, rate, err = decodeOGG(f)
	default:
		return Waveform{}, fmt.Errorf("%w: unsupported format %s", ErrDecode, mtype.String())
	}
	if err != nil {
		return Waveform{}, err
	}
	if len(samples) == 0 {
		return Waveform{}, fmt.Errorf("%w: no audio samples in %s", ErrDecode, mtype.String())
	}

	out := resample(samples, rate, l.sampleRate)
	l.log.Debugw("[Audio] Decoded audio",
		"format", mtype.String(),
		"source_rate", rate,
		"target_rate", l.sampleRate,
		"samples", len(out),
	)

	return Waveform{Samples: out, SampleRate: l.sampleRate}, nil
}
