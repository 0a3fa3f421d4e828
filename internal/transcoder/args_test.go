package transcoder

import (
	"strings"
	"testing"

	"url2media/internal/model"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name            string
		format          model.Format
		wantContains    []string
		wantNotContains []string
	}{
		{
			name:            "mp3 is lossy audio only",
			format:          model.FormatMP3,
			wantContains:    []string{"-vn", "-c:a", "libmp3lame", "-f", "mp3"},
			wantNotContains: []string{"-c:v", "libx264"},
		},
		{
			name:            "wav is uncompressed pcm",
			format:          model.FormatWAV,
			wantContains:    []string{"-vn", "-c:a", "pcm_s16le", "-f", "wav"},
			wantNotContains: []string{"-c:v"},
		},
		{
			name:            "mp4 re-encodes video",
			format:          model.FormatMP4,
			wantContains:    []string{"-c:v", "libx264", "-c:a", "aac", "-f", "mp4", "-movflags", "+faststart"},
			wantNotContains: []string{"-vn"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := BuildArgs("/tmp/in.webm", tt.format, "/tmp/out."+string(tt.format))
			if err != nil {
				t.Fatalf("BuildArgs() error: %v", err)
			}

			argsStr := strings.Join(args, " ")
			for _, want := range tt.wantContains {
				if !strings.Contains(argsStr, want) {
					t.Errorf("args missing %q, got: %v", want, args)
				}
			}
			for _, notWant := range tt.wantNotContains {
				if strings.Contains(argsStr, notWant) {
					t.Errorf("args should not contain %q, got: %v", notWant, args)
				}
			}

			if args[0] != "-y" {
				t.Errorf("args should start with -y, got %v", args[0])
			}
			if args[len(args)-1] != "/tmp/out."+string(tt.format) {
				t.Errorf("last arg = %v, want output path", args[len(args)-1])
			}
		})
	}
}

func TestBuildArgsRejectsUnknownFormat(t *testing.T) {
	if _, err := BuildArgs("/tmp/in.webm", model.Format("ogg"), "/tmp/out.ogg"); err == nil {
		t.Error("BuildArgs() expected error for unknown format")
	}
}
