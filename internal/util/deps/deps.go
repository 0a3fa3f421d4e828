// Package deps locates the external tools the pipeline shells out to.
package deps

import (
	"fmt"
	"os"
	"os/exec"
)

// FindDownloader returns the path to yt-dlp (or youtube-dl as a fallback).
// If customPath is non-empty, it tries that path directly or looks it up
// in PATH.
func FindDownloader(customPath string) (string, error) {
	if customPath != "" {
		return resolve(customPath)
	}
	if p, err := exec.LookPath("yt-dlp"); err == nil {
		return p, nil
	}
	if p, err := exec.LookPath("youtube-dl"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find yt-dlp or youtube-dl in PATH")
}

// FindFFmpeg returns the path to the ffmpeg binary.
// If customPath is non-empty, it tries that path directly or looks it up
// in PATH.
func FindFFmpeg(customPath string) (string, error) {
	if customPath != "" {
		return resolve(customPath)
	}
	if p, err := exec.LookPath("ffmpeg"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find ffmpeg in PATH")
}

func resolve(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if p, err := exec.LookPath(path); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find %q", path)
}
