package transcribe

import "errors"

// Error classes returned by Pipeline.Run. The HTTP layer maps each one to a
// fixed client message; the wrapped detail is only logged.
var (
	ErrNotReady  = errors.New("model is not loaded")
	ErrFetch     = errors.New("failed to download audio")
	ErrTooLarge  = errors.New("audio exceeds size limit")
	ErrDecode    = errors.New("failed to decode audio")
	ErrInference = errors.New("transcription failed")
)
