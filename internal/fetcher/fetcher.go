// Package fetcher drives the external retrieval tool: it selects a format
// expression for the requested output, streams download progress to a
// reporter, and falls back once to the universal format expression when the
// primary attempt fails.
package fetcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"url2media/internal/progress"
	"url2media/internal/util"
)

// ErrEmptyDownload marks an attempt where the downloader exited cleanly but
// wrote nothing. It fails the attempt the same way a non-zero exit does; the
// distinction only matters in logs.
var ErrEmptyDownload = errors.New("downloader produced an empty file")

// Options controls fetch behavior.
type Options struct {
	DownloaderPath string
	Runner         util.CmdRunner
	Reporter       progress.Reporter
	Log            *logrus.Entry
	JobID          string
}

// Fetch retrieves media from url into dstPath using formatSpec. A failed
// primary attempt (process error or empty output) is retried exactly once
// with FallbackSpec, unless the primary spec already is the fallback.
func Fetch(ctx context.Context, url, formatSpec, dstPath string, opts Options) error {
	if opts.DownloaderPath == "" {
		return errors.New("downloader path is required")
	}
	if opts.Runner == nil {
		opts.Runner = util.NewDefaultRunner()
	}
	if opts.Reporter == nil {
		opts.Reporter = progress.Discard
	}
	if opts.Log == nil {
		opts.Log = logrus.NewEntry(logrus.StandardLogger())
	}

	err := fetchOnce(ctx, url, formatSpec, dstPath, opts)
	if err == nil {
		return nil
	}
	if formatSpec == FallbackSpec {
		return fmt.Errorf("fetch %q: %w", formatSpec, err)
	}
	if ctx.Err() != nil {
		return fmt.Errorf("fetch %q: %w", formatSpec, err)
	}

	opts.Log.WithError(err).Warnf("format spec %q failed, retrying with %q", formatSpec, FallbackSpec)
	if err := fetchOnce(ctx, url, FallbackSpec, dstPath, opts); err != nil {
		return fmt.Errorf("fetch failed after fallback %q: %w", FallbackSpec, err)
	}
	return nil
}

func fetchOnce(ctx context.Context, url, formatSpec, dstPath string, opts Options) error {
	// Every invocation starts clean: no cache, no archive, no partial files,
	// overwrite whatever a previous attempt left behind.
	args := []string{
		"--no-cache-dir",
		"--no-download-archive",
		"--no-part",
		"--no-continue",
		"--force-overwrites",
		"-f", formatSpec,
		"-o", dstPath,
		url,
	}
	opts.Log.Debug(util.CommandLine(opts.DownloaderPath, args))

	res, runErr := opts.Runner.Run(ctx, util.CmdSpec{
		Path: opts.DownloaderPath,
		Args: args,
		StdoutLine: func(line string) {
			if u, ok := ParseProgress(line, opts.JobID); ok {
				opts.Reporter.Update(u)
			}
		},
		StderrLine: func(line string) {
			opts.Log.WithField("stream", "stderr").Debug(line)
		},
	})
	if runErr != nil {
		opts.Log.WithError(runErr).Errorf("downloader stderr: %s", res.Stderr)
		return fmt.Errorf("downloader: %w", runErr)
	}

	size, err := util.FileSize(dstPath)
	if err != nil {
		return fmt.Errorf("stat download: %w", err)
	}
	if size == 0 {
		return ErrEmptyDownload
	}
	return nil
}
