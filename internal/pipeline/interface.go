package pipeline

import (
	"context"
	"time"
)

// Pipeline turns one audio file into one meeting report.
type Pipeline interface {
	Run(ctx context.Context, audioPath string) (*Outcome, error)
}

// Outcome describes a successful run.
type Outcome struct {
	ReportPath string
	Segments   int
	Speakers   int
	Duration   time.Duration
}
