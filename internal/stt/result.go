package stt

import "time"

// Result represents the result of a speech-to-text transcription
type Result struct {
	Text     string        // The transcribed text with special tokens stripped
	Language string        // Language reported by the backend, may be empty
	Provider string        // The backend used (e.g., "whisper", "openai")
	Duration time.Duration // Wall time spent in inference
}
