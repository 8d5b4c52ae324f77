package stt

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"whisperasr/internal/audio"
)

// OpenAIModel transcribes through the OpenAI audio transcription API.
type OpenAIModel struct {
	client *openai.Client
	model  string
	log    *zap.SugaredLogger
}

// NewOpenAIModel creates a remote Whisper backend. An empty baseURL keeps the
// client default.
func NewOpenAIModel(apiKey, baseURL, model string, log *zap.SugaredLogger) *OpenAIModel {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &OpenAIModel{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    log,
	}
}

// Name returns the backend name
func (m *OpenAIModel) Name() string {
	return "openai"
}

// Transcribe re-encodes the waveform as WAV and uploads it.
func (m *OpenAIModel) Transcribe(ctx context.Context, wave audio.Waveform) (*Result, error) {
	start := time.Now()

	data, err := audio.EncodeWAV(wave)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audio for upload: %w", err)
	}

	m.log.Debugw("[OpenAI STT] Calling transcription API",
		"model", m.model,
		"size", len(data),
		"audio", wave.Duration(),
	)
	resp, err := m.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    m.model,
		FilePath: "audio.wav",
		Reader:   bytes.NewReader(data),
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	duration := time.Since(start)
	text := strings.TrimSpace(resp.Text)
	m.log.Debugw("[OpenAI STT] Transcription finished", "length", len(text), "elapsed", duration)

	return &Result{
		Text:     text,
		Language: resp.Language,
		Provider: m.Name(),
		Duration: duration,
	}, nil
}

// Close is a no-op, the HTTP client holds no model state.
func (m *OpenAIModel) Close() error {
	return nil
}
