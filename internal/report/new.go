package report

import (
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

type implWriter struct {
	cfg    config.ReportConfig
	now    func() time.Time
	logger logger.Logger
}

// New creates a Writer that names reports after the wall clock.
func New(cfg config.ReportConfig, log logger.Logger) Writer {
	return newWithClock(cfg, time.Now, log)
}

func newWithClock(cfg config.ReportConfig, now func() time.Time, log logger.Logger) *implWriter {
	return &implWriter{
		cfg:    cfg,
		now:    now,
		logger: log,
	}
}
