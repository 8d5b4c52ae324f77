package stt

import (
	"context"

	"whisperasr/internal/audio"
)

//go:generate mockgen -source=interface.go -destination=mock_stt/mock_stt.go -package=mock_stt

// Model defines the interface for speech-to-text backends
type Model interface {
	// Transcribe turns a mono waveform into text. The waveform must already be
	// at the sample rate the backend expects.
	Transcribe(ctx context.Context, wave audio.Waveform) (*Result, error)

	// Name returns the name of the backend (e.g., "whisper", "openai")
	Name() string

	// Close releases the resources held by the backend
	Close() error
}
