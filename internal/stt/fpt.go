package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"whisperasr/internal/audio"
)

// FPTModel implements STT using FPT.AI Speech-to-Text API
type FPTModel struct {
	apiKey string
	url    string
	client *http.Client
	log    *zap.SugaredLogger
}

// NewFPTModel creates a new FPT STT backend
func NewFPTModel(apiKey, url string, log *zap.SugaredLogger) *FPTModel {
	return &FPTModel{
		apiKey: apiKey,
		url:    url,
		client: &http.Client{Timeout: 90 * time.Second},
		log:    log,
	}
}

// Name returns the backend name
func (m *FPTModel) Name() string {
	return "fpt"
}

// fptResponse represents FPT.AI STT API response
type fptResponse struct {
	Hypotheses []struct {
		Utterance  string  `json:"utterance"`
		Confidence float64 `json:"confidence"`
	} `json:"hypotheses"`
	ErrorCode int    `json:"errorCode,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Transcribe sends the waveform as WAV to FPT.AI and returns the best hypothesis
func (m *FPTModel) Transcribe(ctx context.Context, wave audio.Waveform) (*Result, error) {
	start := time.Now()

	data, err := audio.EncodeWAV(wave)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audio for upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("api-key", m.apiKey)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to FPT.AI: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		m.log.Warnw("[FPT STT] API error", "status", resp.StatusCode, "body", preview(body))
		return nil, fmt.Errorf("FPT.AI API returned status %d", resp.StatusCode)
	}

	var sttResp fptResponse
	if err := json.Unmarshal(body, &sttResp); err != nil {
		m.log.Warnw("[FPT STT] Failed to parse response", "body", preview(body))
		return nil, fmt.Errorf("failed to parse FPT.AI response: %w", err)
	}
	if sttResp.ErrorCode != 0 {
		return nil, fmt.Errorf("FPT.AI API error %d: %s", sttResp.ErrorCode, sttResp.Message)
	}

	// No hypotheses means no speech; that is an empty transcript, not a failure.
	var text string
	if len(sttResp.Hypotheses) > 0 {
		text = strings.TrimSpace(sttResp.Hypotheses[0].Utterance)
	}

	duration := time.Since(start)
	m.log.Debugw("[FPT STT] Transcription finished", "length", len(text), "elapsed", duration)

	return &Result{
		Text:     text,
		Provider: m.Name(),
		Duration: duration,
	}, nil
}

// Close is a no-op
func (m *FPTModel) Close() error {
	return nil
}

// preview truncates a response body for logging
func preview(body []byte) string {
	s := string(body)
	if len(s) > 500 {
		s = s[:500] + "..."
	}
	return s
}
