package report

import (
	"context"

	"github.com/nguyentantai21042004/meeting-minutes/internal/aligner"
)

// Writer persists a finished meeting report and returns the Markdown path.
type Writer interface {
	Write(ctx context.Context, summary string, utterances []aligner.Utterance) (string, error)
}
