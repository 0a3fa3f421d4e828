package model

import (
	"errors"
	"testing"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		format     string
		quality    string
		want       ConversionRequest
		wantClient bool
	}{
		{
			name:    "defaults to mp3 best",
			url:     "https://example.com/v1",
			format:  "",
			quality: "",
			want:    ConversionRequest{SourceURL: "https://example.com/v1", Format: FormatMP3},
		},
		{
			name:    "mp4 with height ceiling",
			url:     "https://example.com/v2",
			format:  "mp4",
			quality: "360",
			want:    ConversionRequest{SourceURL: "https://example.com/v2", Format: FormatMP4, Height: 360},
		},
		{
			name:    "mp4 best is uncapped",
			url:     "https://example.com/v3",
			format:  "mp4",
			quality: "best",
			want:    ConversionRequest{SourceURL: "https://example.com/v3", Format: FormatMP4},
		},
		{
			name:    "quality ignored for audio formats",
			url:     "https://example.com/v4",
			format:  "wav",
			quality: "360",
			want:    ConversionRequest{SourceURL: "https://example.com/v4", Format: FormatWAV},
		},
		{
			name:    "format is case-insensitive",
			url:     "https://example.com/v5",
			format:  "MP3",
			quality: "",
			want:    ConversionRequest{SourceURL: "https://example.com/v5", Format: FormatMP3},
		},
		{
			name:       "empty url",
			url:        "",
			wantClient: true,
		},
		{
			name:       "url without host",
			url:        "not a url",
			wantClient: true,
		},
		{
			name:       "non-http scheme",
			url:        "ftp://example.com/v1",
			wantClient: true,
		},
		{
			name:       "unsupported format",
			url:        "https://example.com/v1",
			format:     "flac",
			wantClient: true,
		},
		{
			name:       "non-numeric mp4 quality",
			url:        "https://example.com/v1",
			format:     "mp4",
			quality:    "high",
			wantClient: true,
		},
		{
			name:       "negative mp4 quality",
			url:        "https://example.com/v1",
			format:     "mp4",
			quality:    "-360",
			wantClient: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequest(tt.url, tt.format, tt.quality)

			if tt.wantClient {
				if err == nil {
					t.Fatalf("ParseRequest() expected error, got %+v", got)
				}
				var reqErr *RequestError
				if !errors.As(err, &reqErr) {
					t.Errorf("ParseRequest() error = %v, want RequestError", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseRequest() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseRequest() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFormatContentType(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatMP3, "audio/mpeg"},
		{FormatWAV, "audio/wav"},
		{FormatMP4, "video/mp4"},
	}
	for _, tt := range tests {
		if got := tt.format.ContentType(); got != tt.want {
			t.Errorf("ContentType(%s) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormatAudioOnly(t *testing.T) {
	if !FormatMP3.AudioOnly() || !FormatWAV.AudioOnly() {
		t.Error("mp3 and wav should be audio-only")
	}
	if FormatMP4.AudioOnly() {
		t.Error("mp4 should not be audio-only")
	}
}
