package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STT_PROVIDER", "MODEL_PATH", "SAMPLE_RATE", "MAX_AUDIO_BYTES", "FETCH_TIMEOUT", "MODEL_THREADS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Fatalf("expected port 8000, got %s", cfg.Port)
	}
	if cfg.STTProvider != "whisper" {
		t.Fatalf("expected whisper provider, got %s", cfg.STTProvider)
	}
	if cfg.SampleRate != 16000 {
		t.Fatalf("expected 16000 Hz, got %d", cfg.SampleRate)
	}
	if cfg.MaxAudioBytes != 25<<20 {
		t.Fatalf("expected 25 MiB limit, got %d", cfg.MaxAudioBytes)
	}
	if cfg.FetchTimeout != 90*time.Second {
		t.Fatalf("expected 90s fetch timeout, got %v", cfg.FetchTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STT_PROVIDER", "OpenAI")
	t.Setenv("MAX_AUDIO_BYTES", "0")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("USERNAME_AUTHORIZE", "admin")
	t.Setenv("PASSWORD_AUTHORIZE", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.STTProvider != "openai" {
		t.Fatalf("expected lowercased provider, got %s", cfg.STTProvider)
	}
	if cfg.MaxAudioBytes != 0 {
		t.Fatalf("expected unlimited size, got %d", cfg.MaxAudioBytes)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Fatalf("expected 5s, got %v", cfg.FetchTimeout)
	}
	if cfg.DocsUsername != "admin" || cfg.DocsPassword != "secret" {
		t.Fatalf("expected docs credentials from env")
	}
}

func TestLoadRejectsInvalidNumbers(t *testing.T) {
	cases := map[string]string{
		"SAMPLE_RATE":     "fast",
		"MAX_AUDIO_BYTES": "-1",
		"FETCH_TIMEOUT":   "soon",
		"MODEL_THREADS":   "four",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoadRejectsZeroSampleRate(t *testing.T) {
	t.Setenv("SAMPLE_RATE", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero sample rate")
	}
}
