package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	// Model
	STTProvider   string
	ModelPath     string
	ModelThreads  uint
	ModelLanguage string
	SampleRate    int

	// Remote backend
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	FPTApiKey     string
	FPTSTTURL     string

	// Documentation routes
	DocsUsername string
	DocsPassword string

	// Ingestion
	MaxAudioBytes   int64
	FetchTimeout    time.Duration
	TempDir         string
	ShutdownTimeout time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		STTProvider:   strings.ToLower(getEnv("STT_PROVIDER", "whisper")),
		ModelPath:     getEnv("MODEL_PATH", "models/whisper-tiny.bin"),
		ModelLanguage: getEnv("MODEL_LANGUAGE", "auto"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "whisper-1"),
		FPTApiKey:     os.Getenv("FPT_AI_API_KEY"),
		FPTSTTURL:     getEnv("FPT_AI_STT_URL", "https://api.fpt.ai/hmi/asr/v1"),
		DocsUsername:  os.Getenv("USERNAME_AUTHORIZE"),
		DocsPassword:  os.Getenv("PASSWORD_AUTHORIZE"),
		TempDir:       os.Getenv("TEMP_DIR"),
	}

	threads, err := getUint("MODEL_THREADS", 0)
	if err != nil {
		return nil, err
	}
	cfg.ModelThreads = uint(threads)

	rate, err := getUint("SAMPLE_RATE", 16000)
	if err != nil {
		return nil, err
	}
	if rate == 0 {
		return nil, fmt.Errorf("SAMPLE_RATE must be positive")
	}
	cfg.SampleRate = int(rate)

	maxBytes, err := getUint("MAX_AUDIO_BYTES", 25<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxAudioBytes = int64(maxBytes)

	if cfg.FetchTimeout, err = getDuration("FETCH_TIMEOUT", 90*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	// Docs credentials are optional; without them the docs routes always answer 401.

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getUint(key string, fallback uint64) (uint64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s must be a non-negative duration like 30s, got %q", key, v)
	}
	return d, nil
}
