package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"url2media/internal/config"
	"url2media/internal/dirs"
	"url2media/internal/pipeline"
	"url2media/internal/progress"
	"url2media/internal/server"
	"url2media/internal/util/deps"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the conversion HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	settings := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if settings.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	log := logger.WithField("component", "serve")

	dlPath, err := deps.FindDownloader(settings.DLBinary)
	if err != nil {
		return &ExitError{Code: ExitMissingDep, Err: fmt.Errorf("downloader: %w", err)}
	}
	ffmpegPath, err := deps.FindFFmpeg(settings.FFmpegBinary)
	if err != nil {
		return &ExitError{Code: ExitMissingDep, Err: fmt.Errorf("ffmpeg: %w", err)}
	}
	if err := dirs.Ensure(settings.ScratchDir); err != nil {
		return &ExitError{Code: ExitServer, Err: fmt.Errorf("scratch dir: %w", err)}
	}

	log.WithFields(logrus.Fields{
		"downloader": dlPath,
		"ffmpeg":     ffmpegPath,
		"scratch":    settings.ScratchDir,
	}).Info("resolved tools")

	hub := progress.NewHub(logger)
	svc := pipeline.NewService(
		pipeline.WithDownloaderPath(dlPath),
		pipeline.WithFFmpegPath(ffmpegPath),
		pipeline.WithScratchDir(settings.ScratchDir),
		pipeline.WithProbeTimeout(settings.ProbeTimeout),
		pipeline.WithReporter(hub),
		pipeline.WithLogger(logger),
	)

	srv := server.New(server.Options{
		Converter: svc,
		Hub:       hub,
		Log:       logger,
	})

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", settings.Listen).Info("listening")
		errCh <- srv.Start(settings.Listen)
	}()

	ctx := cmd.Context()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return &ExitError{Code: ExitServer, Err: err}
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return &ExitError{Code: ExitServer, Err: fmt.Errorf("shutdown: %w", err)}
	}
	return nil
}
