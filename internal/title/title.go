// Package title resolves a human-readable name for a source URL and makes it
// safe to use as a filename and an HTTP header value.
package title

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"

	"url2media/internal/util"
)

// Fallback is the title used when resolution fails or sanitization leaves
// nothing behind.
const Fallback = "audio"

// DefaultProbeTimeout bounds how long a metadata probe may stall the pipeline.
const DefaultProbeTimeout = 15 * time.Second

// Options controls title resolution.
type Options struct {
	DownloaderPath string
	Runner         util.CmdRunner
	Timeout        time.Duration
	Log            *logrus.Entry
}

// Resolve fetches the source's title via the metadata probe. Resolution is
// best-effort: any probe failure, timeout, or empty output logs a warning and
// yields Fallback. The result is always sanitized.
func Resolve(ctx context.Context, url string, opts Options) string {
	if opts.Runner == nil {
		opts.Runner = util.NewDefaultRunner()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultProbeTimeout
	}
	if opts.Log == nil {
		opts.Log = logrus.NewEntry(logrus.StandardLogger())
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	res, err := opts.Runner.Run(ctx, util.CmdSpec{
		Path:          opts.DownloaderPath,
		Args:          []string{"--get-title", url},
		CaptureStdout: true,
	})
	if err != nil {
		opts.Log.WithError(err).Warn("could not resolve source title")
		return Fallback
	}

	raw := strings.TrimSpace(string(res.Stdout))
	if raw == "" {
		opts.Log.Warn("metadata probe returned an empty title")
		return Fallback
	}
	return Sanitize(raw)
}

// Sanitize reduces s to characters safe in a filename component and an HTTP
// header: word characters, spaces, hyphens, and dots. Everything else is
// stripped, whitespace runs collapse to single spaces, and an empty result
// becomes Fallback. Applying it twice yields the same output as applying it
// once.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '_' || r == '-' || r == '.':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteByte(' ')
		case isWord(r):
			b.WriteRune(r)
		}
	}
	out := strings.Join(strings.Fields(b.String()), " ")
	out = strings.TrimSpace(out)
	if out == "" {
		return Fallback
	}
	return out
}

// isWord treats letters and digits (any script) as word characters. Path
// separators, quotes, and control characters never qualify.
func isWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
