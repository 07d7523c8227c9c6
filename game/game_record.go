package game

import (
	"context"
	"time"
)

// RoundRecord cumulative standings after one scored round
type RoundRecord struct {
	GameID string
	Round  int
	Scores []Score
	At     time.Time
}

// Recorder persists round records, e.g. the CSV stats sink.
type Recorder interface {
	Record(ctx context.Context, rec RoundRecord) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, rec RoundRecord) error

func (f RecorderFunc) Record(ctx context.Context, rec RoundRecord) error {
	return f(ctx, rec)
}
