package pipeline

import (
	"github.com/nguyentantai21042004/meeting-minutes/internal/aligner"
	"github.com/nguyentantai21042004/meeting-minutes/internal/diarizer"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/report"
	"github.com/nguyentantai21042004/meeting-minutes/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
)

// Deps are the collaborators a run is wired with.
type Deps struct {
	Extensions  []string
	Transcriber transcriber.Transcriber
	Diarizer    diarizer.Diarizer
	Summarizer  summarizer.Summarizer
	Writer      report.Writer
	Alignment   aligner.Options
}

type implPipeline struct {
	deps   Deps
	logger logger.Logger
}

// New creates a new Pipeline instance
func New(deps Deps, log logger.Logger) Pipeline {
	return &implPipeline{
		deps:   deps,
		logger: log,
	}
}
