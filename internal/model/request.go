// Package model defines the conversion request and its validation rules.
package model

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Format is a supported output container.
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatWAV Format = "wav"
	FormatMP4 Format = "mp4"
)

// QualityBest requests the best available stream with no height ceiling.
const QualityBest = "best"

// AudioOnly reports whether the format carries no video stream.
func (f Format) AudioOnly() bool {
	return f == FormatMP3 || f == FormatWAV
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatMP4:
		return "video/mp4"
	case FormatWAV:
		return "audio/wav"
	default:
		return "audio/mpeg"
	}
}

// ConversionRequest is a validated request to fetch and transcode a source URL.
type ConversionRequest struct {
	SourceURL string
	Format    Format
	// Height is the video height ceiling for mp4 output; 0 means uncapped.
	Height int
}

// RequestError describes a request the client must fix. It is distinct from
// pipeline failures: no external process runs before one is reported.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string {
	return e.Reason
}

func requestErrorf(format string, args ...any) error {
	return &RequestError{Reason: fmt.Sprintf(format, args...)}
}

// ParseRequest validates raw inputs and builds a ConversionRequest.
// Empty format defaults to mp3, empty quality to "best". Quality is consulted
// only for mp4 output.
func ParseRequest(rawURL, format, quality string) (ConversionRequest, error) {
	var req ConversionRequest

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return req, requestErrorf("url is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return req, requestErrorf("invalid url %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return req, requestErrorf("unsupported url scheme %q", u.Scheme)
	}

	if format == "" {
		format = string(FormatMP3)
	}
	f := Format(strings.ToLower(format))
	switch f {
	case FormatMP3, FormatWAV, FormatMP4:
	default:
		return req, requestErrorf("unsupported format %q (valid: mp3|wav|mp4)", format)
	}

	height := 0
	if f == FormatMP4 {
		if quality == "" {
			quality = QualityBest
		}
		if quality != QualityBest {
			h, err := strconv.Atoi(quality)
			if err != nil || h <= 0 {
				return req, requestErrorf("invalid quality %q (valid: best or a positive height)", quality)
			}
			height = h
		}
	}

	return ConversionRequest{
		SourceURL: rawURL,
		Format:    f,
		Height:    height,
	}, nil
}
