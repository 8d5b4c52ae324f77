// Package transcribe runs one audio file through decoding and inference.
// Uploads and URL downloads share the same pipeline and differ only in
// their Source.
package transcribe

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"whisperasr/internal/audio"
	"whisperasr/internal/stt"
)

// Decoder turns raw file bytes into a waveform. *audio.Loader implements it.
type Decoder interface {
	Load(ctx context.Context, data []byte) (audio.Waveform, error)
}

// Pipeline is safe for concurrent use; it holds no per-request state.
type Pipeline struct {
	models   *stt.Holder
	decoder  Decoder
	maxBytes int64
	log      *zap.SugaredLogger
}

// NewPipeline creates a pipeline. maxBytes <= 0 disables the size limit.
func NewPipeline(models *stt.Holder, decoder Decoder, maxBytes int64, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{
		models:   models,
		decoder:  decoder,
		maxBytes: maxBytes,
		log:      log,
	}
}

// Ready reports whether the model has finished loading.
func (p *Pipeline) Ready() bool {
	_, ok := p.models.Get()
	return ok
}

// Run fetches, decodes and transcribes one audio file. Errors are wrapped in
// one of ErrNotReady, ErrFetch, ErrTooLarge, ErrDecode or ErrInference.
func (p *Pipeline) Run(ctx context.Context, src Source) (*stt.Result, error) {
	model, ok := p.models.Get()
	if !ok {
		return nil, ErrNotReady
	}

	data, err := src.Fetch(ctx, p.maxBytes)
	if err != nil {
		if errors.Is(err, ErrFetch) || errors.Is(err, ErrTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	p.log.Infow("[Transcribe] Audio received", "source", src.Describe(), "size", len(data))

	wave, err := p.decoder.Load(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	result, err := model.Transcribe(ctx, wave)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInference, err)
	}

	p.log.Infow("[Transcribe] Transcription completed successfully",
		"source", src.Describe(),
		"provider", result.Provider,
		"audio", wave.Duration(),
		"elapsed", result.Duration,
		"length", len(result.Text),
	)
	return result, nil
}
