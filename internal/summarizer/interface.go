package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/meeting-minutes/internal/aligner"
)

// Summarizer turns a speaker-attributed transcript into a Markdown summary
// (meeting summary, decisions, tags). The response is returned verbatim.
type Summarizer interface {
	Summarize(ctx context.Context, utterances []aligner.Utterance) (string, error)
}
