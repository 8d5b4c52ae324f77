//go:build !whisper

package stt

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"whisperasr/internal/audio"
)

// errWhisperDisabled is returned when the binary was built without cgo whisper.cpp.
var errWhisperDisabled = errors.New("whisper.cpp support is disabled in this build, rebuild with -tags whisper")

// WhisperModel is unavailable in builds without the whisper tag.
type WhisperModel struct{}

// NewWhisperModel always fails without the whisper build tag.
func NewWhisperModel(path string, threads uint, language string, log *zap.SugaredLogger) (*WhisperModel, error) {
	return nil, errWhisperDisabled
}

func (m *WhisperModel) Name() string {
	return "whisper"
}

func (m *WhisperModel) Transcribe(ctx context.Context, wave audio.Waveform) (*Result, error) {
	return nil, errWhisperDisabled
}

func (m *WhisperModel) Close() error {
	return nil
}
