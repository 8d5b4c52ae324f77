package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"whisperasr/internal/model"
	"whisperasr/internal/transcribe"
	"whisperasr/internal/utils"
)

// Client-facing error details. The underlying error is logged, never returned.
const (
	detailNotReady     = "Model is not loaded."
	detailFetch        = "Failed to download audio from URL."
	detailTooLarge     = "Audio file exceeds the maximum allowed size."
	detailDecode       = "Error processing audio: unsupported or corrupt audio."
	detailInference    = "Error processing audio: transcription failed."
	detailBadJSON      = `Request body must be JSON with a valid "url" field.`
	detailMissingFile  = `Multipart request must carry the audio in a "file" field.`
	detailUnknownError = "Error processing audio."
)

// uploadFields are the multipart field names accepted for the audio file
var uploadFields = []string{"file", "audio", "audio_file"}

// multipartOverhead is the room left for part headers and boundaries on top
// of the audio size limit.
const multipartOverhead = 1 << 20

// transcribe handles POST /transcribe. JSON bodies carry a URL to download,
// multipart bodies carry the file itself.
func (h *Handler) transcribe(c *gin.Context) {
	var src transcribe.Source
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		src = h.uploadSource(c)
	} else {
		src = h.urlSource(c)
	}
	if src == nil {
		return
	}

	result, err := h.pipeline.Run(c.Request.Context(), src)
	if err != nil {
		status, detail := errorResponse(err)
		h.log.Errorw("[Transcribe] Error processing audio",
			"request_id", c.GetString(requestIDKey),
			"source", src.Describe(),
			"status", status,
			"error", err,
		)
		utils.Error(c, status, detail)
		return
	}

	utils.Success(c, model.TranscribeResponse{Text: result.Text})
}

func (h *Handler) urlSource(c *gin.Context) transcribe.Source {
	var req model.TranscribeURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Infow("[Transcribe] Invalid request body", "request_id", c.GetString(requestIDKey), "error", err)
		utils.Error(c, http.StatusBadRequest, detailBadJSON)
		return nil
	}
	return transcribe.URL(h.fetcher, req.URL)
}

func (h *Handler) uploadSource(c *gin.Context) transcribe.Source {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+multipartOverhead)
	}
	for _, field := range uploadFields {
		file, err := c.FormFile(field)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.log.Infow("[Transcribe] Upload body too large",
					"request_id", c.GetString(requestIDKey),
					"limit", tooLarge.Limit,
				)
				utils.Error(c, http.StatusBadRequest, detailTooLarge)
				return nil
			}
			continue
		}
		return transcribe.Upload(file.Filename, file.Size, func() (io.ReadCloser, error) {
			return file.Open()
		})
	}
	utils.Error(c, http.StatusBadRequest, detailMissingFile)
	return nil
}

// errorResponse maps pipeline errors to a status code and a fixed detail
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, transcribe.ErrNotReady):
		return http.StatusInternalServerError, detailNotReady
	case errors.Is(err, transcribe.ErrTooLarge):
		return http.StatusBadRequest, detailTooLarge
	case errors.Is(err, transcribe.ErrFetch):
		return http.StatusBadRequest, detailFetch
	case errors.Is(err, transcribe.ErrDecode):
		return http.StatusBadRequest, detailDecode
	case errors.Is(err, transcribe.ErrInference):
		return http.StatusBadRequest, detailInference
	default:
		return http.StatusBadRequest, detailUnknownError
	}
}
