package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"whisperasr/internal/model"
	"whisperasr/internal/transcribe"
	"whisperasr/internal/utils"
)

const (
	APIName        = "Whisper ASR API"
	APIVersion     = "0.1.0"
	APIDescription = "Speech to text transcription with a pretrained Whisper model"
)

// Handler serves the HTTP API. It holds no per-request state.
type Handler struct {
	pipeline  *transcribe.Pipeline
	fetcher   *http.Client
	maxUpload int64
	log       *zap.SugaredLogger
}

// NewHandler creates a handler. fetcher is used for URL ingestion and
// maxUpload caps multipart bodies before they are parsed (0 = unlimited).
func NewHandler(pipeline *transcribe.Pipeline, fetcher *http.Client, maxUpload int64, log *zap.SugaredLogger) *Handler {
	if fetcher == nil {
		fetcher = http.DefaultClient
	}
	return &Handler{
		pipeline:  pipeline,
		fetcher:   fetcher,
		maxUpload: maxUpload,
		log:       log,
	}
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(h *Handler, creds Credentials, log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery(), corsMiddleware())
	RegisterRoutes(r, h, creds)
	return r
}

func RegisterRoutes(r *gin.Engine, h *Handler, creds Credentials) {
	r.GET("/", apiInfo)
	r.GET("/health", healthCheck)
	r.POST("/transcribe", h.transcribe)

	// Documentation, basic auth only
	docs := r.Group("/", basicAuth(creds))
	{
		docs.GET("/openapi.json", openAPISpec)
		docs.GET("/docs", swaggerUI)
		docs.GET("/redoc", redoc)
	}
}

// healthCheck reports liveness only, it does not look at the model
func healthCheck(c *gin.Context) {
	utils.Success(c, model.HealthResponse{
		Status:     "ok",
		APIVersion: APIVersion,
	})
}

// apiInfo returns static service metadata
func apiInfo(c *gin.Context) {
	utils.Success(c, model.ServiceInfo{
		APIName:     APIName,
		Version:     APIVersion,
		Description: APIDescription,
		Endpoints: map[string]string{
			"/transcribe": "Speech to text transcription",
			"/health":     "Health check",
			"/docs":       "Swagger UI",
			"/redoc":      "ReDoc",
		},
	})
}
