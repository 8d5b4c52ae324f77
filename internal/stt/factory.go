package stt

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"whisperasr/internal/audio"
	"whisperasr/internal/config"
)

// Load creates the configured speech-to-text backend. It is called once at
// startup and any error it returns is fatal.
func Load(cfg *config.Config, log *zap.SugaredLogger) (Model, error) {
	provider := cfg.STTProvider
	if provider == "" {
		provider = "whisper"
		log.Infof("[STT Factory] STT_PROVIDER not set, defaulting to '%s'", provider)
	}

	log.Infow("[STT Factory] Loading speech model", "provider", provider)
	start := time.Now()

	var (
		m   Model
		err error
	)
	switch provider {
	case "whisper":
		m, err = createWhisperModel(cfg, log)
	case "openai":
		m, err = createOpenAIModel(cfg, log)
	case "fpt":
		m, err = createFPTModel(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s. Supported: whisper, openai, fpt", provider)
	}
	if err != nil {
		return nil, err
	}

	log.Infow("[STT Factory] Model loaded successfully",
		"provider", m.Name(),
		"elapsed", time.Since(start),
	)
	return m, nil
}

// createWhisperModel loads the local Whisper model, CPU only
func createWhisperModel(cfg *config.Config, log *zap.SugaredLogger) (Model, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("MODEL_PATH environment variable is not set")
	}
	// Whisper only accepts 16 kHz input; anything else would fail every request.
	if cfg.SampleRate != 0 && cfg.SampleRate != audio.DefaultSampleRate {
		return nil, fmt.Errorf("SAMPLE_RATE must be %d for the whisper provider, got %d", audio.DefaultSampleRate, cfg.SampleRate)
	}
	log.Infow("[STT Factory] Creating Whisper model",
		"path", cfg.ModelPath,
		"threads", cfg.ModelThreads,
		"language", cfg.ModelLanguage,
	)
	m, err := NewWhisperModel(cfg.ModelPath, cfg.ModelThreads, cfg.ModelLanguage, log)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// createOpenAIModel creates the remote Whisper backend
func createOpenAIModel(cfg *config.Config, log *zap.SugaredLogger) (Model, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}
	log.Infow("[STT Factory] Creating OpenAI transcription backend", "model", cfg.OpenAIModel)
	return NewOpenAIModel(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, log), nil
}

// createFPTModel creates an FPT.AI backend
func createFPTModel(cfg *config.Config, log *zap.SugaredLogger) (Model, error) {
	if cfg.FPTApiKey == "" {
		return nil, fmt.Errorf("FPT_AI_API_KEY environment variable is not set")
	}
	log.Infow("[STT Factory] Creating FPT STT backend", "url", cfg.FPTSTTURL)
	return NewFPTModel(cfg.FPTApiKey, cfg.FPTSTTURL, log), nil
}
