package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"url2media/internal/config"
	"url2media/internal/util/deps"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that required external tools are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Load()
			out := cmd.OutOrStdout()

			ok := true
			if p, err := deps.FindDownloader(settings.DLBinary); err != nil {
				ok = false
				fmt.Fprintf(out, "downloader: MISSING (%v)\n", err)
			} else {
				fmt.Fprintf(out, "downloader: %s\n", p)
			}
			if p, err := deps.FindFFmpeg(settings.FFmpegBinary); err != nil {
				ok = false
				fmt.Fprintf(out, "ffmpeg:     MISSING (%v)\n", err)
			} else {
				fmt.Fprintf(out, "ffmpeg:     %s\n", p)
			}

			if !ok {
				return &ExitError{Code: ExitMissingDep, Err: fmt.Errorf("required tools are missing")}
			}
			fmt.Fprintln(out, "all required tools found")
			return nil
		},
	}
}
