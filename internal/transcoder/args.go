package transcoder

import (
	"fmt"

	"url2media/internal/model"
)

// BuildArgs constructs the ffmpeg arguments converting inputPath into
// outputPath for the given format. The container is forced with -f because
// the output path's extension is not authoritative.
func BuildArgs(inputPath string, format model.Format, outputPath string) ([]string, error) {
	args := []string{"-y", "-i", inputPath}

	switch format {
	case model.FormatMP3:
		args = append(args, "-vn", "-c:a", "libmp3lame", "-f", "mp3")
	case model.FormatWAV:
		args = append(args, "-vn", "-c:a", "pcm_s16le", "-f", "wav")
	case model.FormatMP4:
		args = append(args,
			"-c:v", "libx264",
			"-preset", "veryfast",
			"-pix_fmt", "yuv420p",
			"-c:a", "aac",
			"-movflags", "+faststart",
			"-f", "mp4",
		)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	args = append(args, outputPath)
	return args, nil
}
