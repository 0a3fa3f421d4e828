// Package progress carries live pipeline progress to connected observers.
package progress

import "time"

// Stage identifies a high-level step in the pipeline.
type Stage string

const (
	StageResolvingTitle Stage = "resolving-title"
	StageFetching       Stage = "fetching"
	StageTranscoding    Stage = "transcoding"
	StageCompleted      Stage = "completed"
	StageError          Stage = "error"
)

// Update conveys progress for one request.
// Percent is 0..100 when known; set to a negative value (e.g., -1) to mean unknown.
type Update struct {
	JobID   string
	Stage   Stage
	Percent float64 // 0..100, or <0 if unknown

	ETA     *time.Duration // optional
	Speed   *string        // optional, e.g., "2.5MiB/s"
	Message string         // short human-friendly status line
}

// Reporter is implemented by any observer sink interested in progress events.
type Reporter interface {
	Update(u Update)
}

// Discard is a Reporter that drops every update.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Update(Update) {}
