package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voxmod/voxmod/internal/api"
	"github.com/voxmod/voxmod/internal/capability"
	"github.com/voxmod/voxmod/internal/config"
	"github.com/voxmod/voxmod/internal/fishaudio"
	"github.com/voxmod/voxmod/internal/transcode"
	"github.com/voxmod/voxmod/internal/transcribe"
	"github.com/voxmod/voxmod/internal/voice"
	"github.com/voxmod/voxmod/internal/waitlist"
)

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	logger.Info().
		Str("listen", cfg.Server.Listen).
		Str("provider", cfg.Provider.BaseURL).
		Str("log_level", cfg.Logging.Level).
		Msg("Starting voxmod server")

	provider := fishaudio.NewClient(&cfg.Provider)
	if !provider.Configured() {
		logger.Warn().Msg("FISH_AUDIO_API_KEY not set - voice cloning requests will fail")
	}

	transcoder := transcode.Detect(logger)
	transcriber := transcribe.NewWhisper(cfg.Transcription.APIKey, cfg.Transcription.Language, logger)

	caps := capability.New(transcoder.Available(), transcriber.Available())
	logger.Info().
		Bool("ffmpeg", caps.Transcoding).
		Bool("whisper", caps.Transcription).
		Msg("Capabilities detected")

	for _, dir := range []string{cfg.Audio.UploadDir, cfg.Audio.GeneratedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	orch := voice.NewOrchestrator(transcoder, transcriber, provider, caps, logger)
	wl := waitlist.NewStore(cfg.Audio.WaitlistFile)

	handler := api.NewHandler(cfg, provider, orch, transcoder, transcriber, caps, wl, logger)
	router := api.NewRouter(cfg, handler)

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Listen).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info().Msg("Server stopped")
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	// Defaults and the original deployment's env names come from the config
	// package; viper layers config-file values and bound flags on top.
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if v := viper.GetString("server.listen"); v != "" {
		cfg.Server.Listen = v
	}
	if v := viper.GetDuration("server.read_timeout"); v != 0 {
		cfg.Server.ReadTimeout = v
	}
	if v := viper.GetDuration("server.write_timeout"); v != 0 {
		cfg.Server.WriteTimeout = v
	}
	if v := viper.GetString("provider.base_url"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := viper.GetString("provider.api_key"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := viper.GetDuration("provider.timeout"); v != 0 {
		cfg.Provider.Timeout = v
	}
	if v := viper.GetString("transcription.api_key"); v != "" {
		cfg.Transcription.APIKey = v
	}
	if v := viper.GetString("auth.api_key"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := viper.GetString("audio.upload_dir"); v != "" {
		cfg.Audio.UploadDir = v
	}
	if v := viper.GetString("audio.generated_dir"); v != "" {
		cfg.Audio.GeneratedDir = v
	}
	if v := viper.GetString("audio.response_mode"); v != "" {
		cfg.Audio.ResponseMode = v
	}
	if v := viper.GetString("logging.level"); v != "" {
		cfg.Logging.Level = v
	}
	if v := viper.GetString("logging.format"); v != "" {
		cfg.Logging.Format = v
	}

	// PORT wins over everything else; that is how the original deployment
	// platform injects the listen address.
	if env := os.Getenv("PORT"); env != "" {
		cfg.Server.Listen = "0.0.0.0:" + env
	}

	if cfg.Audio.ResponseMode != config.ResponseModeFile && cfg.Audio.ResponseMode != config.ResponseModeInline {
		return nil, fmt.Errorf("invalid response mode %q (want file or inline)", cfg.Audio.ResponseMode)
	}

	return cfg, nil
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
