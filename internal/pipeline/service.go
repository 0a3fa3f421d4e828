// Package pipeline orchestrates one conversion request: resolve a title,
// fetch the source into a temporary artifact, transcode it into a second one,
// and hand the finished bytes back. Both artifacts are removed on every exit
// path.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"url2media/internal/artifact"
	"url2media/internal/dirs"
	"url2media/internal/fetcher"
	"url2media/internal/model"
	"url2media/internal/progress"
	"url2media/internal/title"
	"url2media/internal/transcoder"
	"url2media/internal/util"
)

// Service runs conversion pipelines. A single Service handles many concurrent
// requests; each request owns its artifacts and shares nothing but the
// progress reporter.
type Service struct {
	downloaderPath string
	ffmpegPath     string
	scratchDir     string
	probeTimeout   time.Duration
	runner         util.CmdRunner
	reporter       progress.Reporter
	log            *logrus.Entry
}

// Option configures a Service.
type Option func(*Service)

// WithDownloaderPath sets the retrieval tool (yt-dlp/youtube-dl) binary path.
func WithDownloaderPath(p string) Option {
	return func(s *Service) {
		s.downloaderPath = p
	}
}

// WithFFmpegPath sets the ffmpeg binary path.
func WithFFmpegPath(p string) Option {
	return func(s *Service) {
		s.ffmpegPath = p
	}
}

// WithScratchDir sets the directory holding temporary artifacts.
func WithScratchDir(dir string) Option {
	return func(s *Service) {
		s.scratchDir = dir
	}
}

// WithProbeTimeout bounds how long the title probe may run.
func WithProbeTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.probeTimeout = d
	}
}

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(s *Service) {
		s.runner = r
	}
}

// WithReporter attaches a progress reporter (the observer hub).
func WithReporter(rp progress.Reporter) Option {
	return func(s *Service) {
		s.reporter = rp
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Service) {
		s.log = logger.WithField("component", "pipeline")
	}
}

// NewService constructs a new Service with the provided options.
// It applies sensible defaults for missing components.
func NewService(opts ...Option) *Service {
	s := &Service{}
	for _, o := range opts {
		o(s)
	}
	if s.runner == nil {
		s.runner = util.NewDefaultRunner()
	}
	if s.reporter == nil {
		s.reporter = progress.Discard
	}
	if s.scratchDir == "" {
		s.scratchDir = dirs.ScratchDir()
	}
	if s.probeTimeout <= 0 {
		s.probeTimeout = title.DefaultProbeTimeout
	}
	if s.log == nil {
		s.log = logrus.StandardLogger().WithField("component", "pipeline")
	}
	return s
}

// Result is a finished conversion ready to stream back to the caller.
type Result struct {
	Data        []byte
	Title       string
	Filename    string
	ContentType string
}

// Convert executes the full pipeline for one validated request. Cancelling
// ctx terminates any running subprocess; cleanup still runs.
func (s *Service) Convert(ctx context.Context, req model.ConversionRequest) (Result, error) {
	var res Result

	// The caller validates; this guards against an unvalidated Format
	// reaching external processes anyway.
	switch req.Format {
	case model.FormatMP3, model.FormatWAV, model.FormatMP4:
	default:
		return res, fmt.Errorf("unsupported format %q", req.Format)
	}
	if s.downloaderPath == "" {
		return res, fmt.Errorf("downloader path is required")
	}
	if s.ffmpegPath == "" {
		return res, fmt.Errorf("ffmpeg path is required")
	}

	jobID := uuid.NewString()
	log := s.log.WithField("job_id", jobID)

	// Title failure never blocks the pipeline.
	name := title.Resolve(ctx, req.SourceURL, title.Options{
		DownloaderPath: s.downloaderPath,
		Runner:         s.runner,
		Timeout:        s.probeTimeout,
		Log:            log,
	})

	downloaded, err := artifact.New(s.scratchDir, "download", ".webm")
	if err != nil {
		return res, fmt.Errorf("allocate download artifact: %w", err)
	}
	defer s.remove(downloaded, log)

	output, err := artifact.New(s.scratchDir, "output", "."+string(req.Format))
	if err != nil {
		return res, fmt.Errorf("allocate output artifact: %w", err)
	}
	defer s.remove(output, log)

	formatSpec := fetcher.FormatSpecFor(req.Format, req.Height)
	log.WithFields(logrus.Fields{"url": req.SourceURL, "format": req.Format, "spec": formatSpec}).Info("fetching source")

	if err := fetcher.Fetch(ctx, req.SourceURL, formatSpec, downloaded.Path, fetcher.Options{
		DownloaderPath: s.downloaderPath,
		Runner:         s.runner,
		Reporter:       s.reporter,
		Log:            log,
		JobID:          jobID,
	}); err != nil {
		return res, fmt.Errorf("fetch: %w", err)
	}

	log.Info("transcoding")
	if err := transcoder.Transcode(ctx, downloaded.Path, req.Format, output.Path, transcoder.Options{
		FFmpegPath: s.ffmpegPath,
		Runner:     s.runner,
		Log:        log,
	}); err != nil {
		return res, fmt.Errorf("transcode: %w", err)
	}

	data, err := os.ReadFile(output.Path)
	if err != nil {
		return res, fmt.Errorf("read output: %w", err)
	}

	log.WithFields(logrus.Fields{"title": name, "bytes": len(data)}).Info("conversion complete")
	return Result{
		Data:        data,
		Title:       name,
		Filename:    name + "." + string(req.Format),
		ContentType: req.Format.ContentType(),
	}, nil
}

// remove deletes one artifact; a failure is logged and swallowed so the other
// artifact's removal still runs.
func (s *Service) remove(a *artifact.Artifact, log *logrus.Entry) {
	if err := a.Remove(); err != nil {
		log.WithError(err).Warnf("could not remove %s", a.Path)
	}
}
