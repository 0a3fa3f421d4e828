// Package cmd defines the url2media command line.
package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"url2media/internal/config"
)

const (
	ExitOK         = 0
	ExitCLIError   = 1
	ExitMissingDep = 2
	ExitServer     = 3
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "url2media",
		Short:         "Fetch a media URL and serve it back transcoded",
		Long:          "url2media runs a small HTTP service that takes a media URL plus a target format (mp3, wav, or mp4), drives yt-dlp and ffmpeg, and streams the converted file back while broadcasting download progress to connected observers.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default invocation starts the server, same as `url2media serve`.
			return runServe(cmd)
		},
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().StringP("listen", "l", ":8080", "HTTP listen address")
	root.PersistentFlags().String("dl-binary", "", "Path to yt-dlp or youtube-dl")
	root.PersistentFlags().String("ffmpeg-binary", "", "Path to ffmpeg")
	root.PersistentFlags().String("scratch-dir", "", "Directory for temporary artifacts")
	root.PersistentFlags().Duration("probe-timeout", 15*time.Second, "Title probe timeout")
	root.PersistentFlags().BoolP("verbose", "v", false, "Debug-level logging, including subprocess output")

	_ = config.Init(root)

	// Subcommands
	root.AddCommand(newServeCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}
