// Package transcoder converts a fetched media file into the requested output
// format by shelling out to ffmpeg.
package transcoder

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"url2media/internal/model"
	"url2media/internal/util"
)

// Options controls ffmpeg execution.
type Options struct {
	FFmpegPath string
	Runner     util.CmdRunner
	Log        *logrus.Entry
}

// Transcode converts inputPath into outputPath per the requested format.
// A transcode failure is treated as deterministic for the given input: the
// incomplete output is removed and the error is returned without retry.
func Transcode(ctx context.Context, inputPath string, format model.Format, outputPath string, opts Options) error {
	if opts.FFmpegPath == "" {
		return errors.New("ffmpeg path is required")
	}
	if opts.Runner == nil {
		opts.Runner = util.NewDefaultRunner()
	}
	if opts.Log == nil {
		opts.Log = logrus.NewEntry(logrus.StandardLogger())
	}

	args, err := BuildArgs(inputPath, format, outputPath)
	if err != nil {
		return err
	}
	opts.Log.Debug(util.CommandLine(opts.FFmpegPath, args))

	res, runErr := opts.Runner.Run(ctx, util.CmdSpec{
		Path: opts.FFmpegPath,
		Args: args,
		StderrLine: func(line string) {
			opts.Log.WithField("stream", "stderr").Debug(line)
		},
	})
	if runErr != nil {
		// Delete incomplete file
		_ = util.RemoveIfExists(outputPath)
		opts.Log.WithError(runErr).Errorf("ffmpeg stderr: %s", res.Stderr)
		return fmt.Errorf("ffmpeg: %w", runErr)
	}
	return nil
}
