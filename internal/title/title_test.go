package title

import (
	"context"
	"errors"
	"testing"
	"time"

	"url2media/internal/util"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain title", in: "My Song", want: "My Song"},
		{name: "keeps hyphens and dots", in: "mix-tape vol.2", want: "mix-tape vol.2"},
		{name: "strips path separators", in: "a/b\\c", want: "abc"},
		{name: "strips quotes", in: `"quoted" 'title'`, want: "quoted title"},
		{name: "strips control characters", in: "line\r\nbreak\x00", want: "linebreak"},
		{name: "collapses whitespace", in: "  too   many\t spaces ", want: "too many spaces"},
		{name: "keeps non-ascii letters", in: "Любимая песня", want: "Любимая песня"},
		{name: "strips punctuation", in: "what?! (live) [HD]", want: "what live HD"},
		{name: "empty becomes fallback", in: "", want: Fallback},
		{name: "only symbols becomes fallback", in: "///***", want: Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"My Song",
		`weird /\ "title" with: stuff?`,
		"  spaced   out  ",
		"///",
		"Любимая песня",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

type stubRunner struct {
	stdout string
	err    error
	ran    int
}

func (s *stubRunner) Run(ctx context.Context, spec util.CmdSpec) (util.CmdResult, error) {
	s.ran++
	if s.err != nil {
		return util.CmdResult{Code: 1, Err: s.err}, s.err
	}
	return util.CmdResult{Stdout: []byte(s.stdout)}, nil
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		runner *stubRunner
		want   string
	}{
		{
			name:   "happy path sanitizes probe output",
			runner: &stubRunner{stdout: "My Song (Official Video)\n"},
			want:   "My Song Official Video",
		},
		{
			name:   "probe failure falls back",
			runner: &stubRunner{err: errors.New("exit status 1")},
			want:   Fallback,
		},
		{
			name:   "empty output falls back",
			runner: &stubRunner{stdout: "   \n"},
			want:   Fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(context.Background(), "https://example.com/v1", Options{
				DownloaderPath: "/bin/yt-dlp",
				Runner:         tt.runner,
				Timeout:        time.Second,
			})
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
			if tt.runner.ran != 1 {
				t.Errorf("probe ran %d times, want 1", tt.runner.ran)
			}
		})
	}
}
