package fetcher

import (
	"fmt"

	"url2media/internal/model"
)

// FallbackSpec is the universal retrieval expression retried once after a
// failed primary attempt: best merged video+audio, else best available.
const FallbackSpec = "bestvideo+bestaudio/best"

// FormatSpecFor returns the yt-dlp format-selection expression for the
// requested output. Audio-only outputs want the best audio stream; mp4 wants
// merged video+audio, height-capped when the request carries a ceiling, with
// the universal fallback embedded as an OR-alternative.
func FormatSpecFor(format model.Format, height int) string {
	if format.AudioOnly() {
		return "bestaudio"
	}
	if height > 0 {
		return fmt.Sprintf("best[height<=%d]/bestvideo+bestaudio", height)
	}
	return FallbackSpec
}
