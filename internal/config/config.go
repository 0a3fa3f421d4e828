// Package config wires Viper configuration: config file, URL2MEDIA_* env
// variables, and flag bindings, in that precedence order below flags.
package config

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"url2media/internal/dirs"
)

// Settings is the resolved service configuration.
type Settings struct {
	Listen       string
	DLBinary     string
	FFmpegBinary string
	ScratchDir   string
	ProbeTimeout time.Duration
	Verbose      bool
}

// Init wires Viper with config paths, env, and flag bindings.
// It is non-fatal: any errors are returned for optional handling by caller.
func Init(root *cobra.Command) error {
	// Setup config search path
	if cfgDir, err := dirs.ConfigDir(); err == nil {
		_ = dirs.Ensure(cfgDir)
		viper.AddConfigPath(cfgDir)
	}
	viper.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	// Environment variables: URL2MEDIA_*
	viper.SetEnvPrefix("URL2MEDIA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Bind root persistent flags to Viper keys
	_ = viper.BindPFlag("listen", root.PersistentFlags().Lookup("listen"))
	_ = viper.BindPFlag("dl_binary", root.PersistentFlags().Lookup("dl-binary"))
	_ = viper.BindPFlag("ffmpeg_binary", root.PersistentFlags().Lookup("ffmpeg-binary"))
	_ = viper.BindPFlag("scratch_dir", root.PersistentFlags().Lookup("scratch-dir"))
	_ = viper.BindPFlag("probe_timeout", root.PersistentFlags().Lookup("probe-timeout"))
	_ = viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	// Read config file if present (ignore not found)
	_ = viper.ReadInConfig()

	return nil
}

// Load resolves the effective settings after Init has run.
func Load() Settings {
	s := Settings{
		Listen:       viper.GetString("listen"),
		DLBinary:     viper.GetString("dl_binary"),
		FFmpegBinary: viper.GetString("ffmpeg_binary"),
		ScratchDir:   viper.GetString("scratch_dir"),
		ProbeTimeout: viper.GetDuration("probe_timeout"),
		Verbose:      viper.GetBool("verbose"),
	}
	if s.Listen == "" {
		s.Listen = ":8080"
	}
	if s.ScratchDir == "" {
		s.ScratchDir = dirs.ScratchDir()
	}
	return s
}
