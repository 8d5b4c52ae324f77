//go:build whisper

package stt

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"go.uber.org/zap"

	"whisperasr/internal/audio"
)

// WhisperModel runs a local Whisper model through whisper.cpp on the CPU.
// whisper.cpp keeps one decoder state per loaded model, so calls are
// serialized from Process through the last NextSegment.
type WhisperModel struct {
	mu       sync.Mutex
	model    whisper.Model
	threads  uint
	language string
	log      *zap.SugaredLogger
}

// NewWhisperModel loads a ggml Whisper model from path.
func NewWhisperModel(path string, threads uint, language string, log *zap.SugaredLogger) (*WhisperModel, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("whisper model %q is not available: %w", path, err)
	}

	model, err := whisper.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load whisper model %q: %w", path, err)
	}

	if language == "" {
		language = "auto"
	}
	log.Infow("[Whisper STT] Model ready",
		"path", path,
		"multilingual", model.IsMultilingual(),
	)

	return &WhisperModel{
		model:    model,
		threads:  threads,
		language: language,
		log:      log,
	}, nil
}

// Name returns the backend name
func (m *WhisperModel) Name() string {
	return "whisper"
}

// Transcribe runs greedy decoding over the waveform and joins the segments.
func (m *WhisperModel) Transcribe(ctx context.Context, wave audio.Waveform) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if wave.SampleRate != audio.DefaultSampleRate {
		return nil, fmt.Errorf("whisper expects %d Hz audio, got %d Hz", audio.DefaultSampleRate, wave.SampleRate)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	start := time.Now()
	wctx, err := m.model.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create whisper context: %w", err)
	}
	if m.threads > 0 {
		wctx.SetThreads(m.threads)
	}
	// English-only models reject any language setting.
	if m.model.IsMultilingual() {
		if err := wctx.SetLanguage(m.language); err != nil {
			return nil, fmt.Errorf("failed to set language %q: %w", m.language, err)
		}
	}
	wctx.SetTranslate(false)

	if err := wctx.Process(wave.Samples, nil, nil); err != nil {
		return nil, fmt.Errorf("whisper inference failed: %w", err)
	}

	var segments []string
	for {
		seg, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read whisper segment: %w", err)
		}
		if text := strings.TrimSpace(seg.Text); text != "" {
			segments = append(segments, text)
		}
	}

	duration := time.Since(start)
	text := strings.Join(segments, " ")
	m.log.Debugw("[Whisper STT] Transcription finished",
		"segments", len(segments),
		"length", len(text),
		"audio", wave.Duration(),
		"elapsed", duration,
	)

	// With "auto" the context only reports the configured value back.
	language := m.language
	if language == "auto" {
		language = ""
	}

	return &Result{
		Text:     text,
		Language: language,
		Provider: m.Name(),
		Duration: duration,
	}, nil
}

// Close releases the model once any running call has finished
func (m *WhisperModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.model.Close()
}
