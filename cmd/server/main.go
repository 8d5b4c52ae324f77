package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"whisperasr/internal/api"
	"whisperasr/internal/audio"
	"whisperasr/internal/config"
	"whisperasr/internal/logger"
	"whisperasr/internal/stt"
	"whisperasr/internal/transcribe"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()
	sugar := zl.Sugar()

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, sugar); err != nil {
		sugar.Errorw("Server stopped with error", "error", err)
		zl.Sync()
		os.Exit(1)
	}
}

// run serves HTTP while the model loads. A load failure stops the server.
func run(cfg *config.Config, sugar *zap.SugaredLogger) error {
	models := stt.NewHolder()
	loader := audio.NewLoader(cfg.SampleRate, cfg.TempDir, sugar)
	pipeline := transcribe.NewPipeline(models, loader, cfg.MaxAudioBytes, sugar)

	handler := api.NewHandler(pipeline, &http.Client{Timeout: cfg.FetchTimeout}, cfg.MaxAudioBytes, sugar)
	router := api.NewRouter(handler, api.Credentials{
		Username: cfg.DocsUsername,
		Password: cfg.DocsPassword,
	}, sugar)
	if cfg.DocsUsername == "" || cfg.DocsPassword == "" {
		sugar.Warn("USERNAME_AUTHORIZE or PASSWORD_AUTHORIZE not set, documentation routes are locked")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infof("Whisper ASR backend running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		m, err := stt.Load(cfg, sugar)
		if err != nil {
			return fmt.Errorf("failed to load model during startup: %w", err)
		}
		models.Set(m)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		sugar.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if m, ok := models.Get(); ok {
		if cerr := m.Close(); cerr != nil {
			sugar.Warnw("Failed to release model", "error", cerr)
		}
	}
	return err
}
