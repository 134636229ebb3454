package diarizer

import "context"

// Turn is one speaker-attributed interval. Track distinguishes overlapping
// tracks inside the same interval, as pyannote does.
type Turn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Track   string  `json:"track"`
	Speaker string  `json:"speaker"`
}

// Result is the diarization of one audio file, turns in engine order.
type Result struct {
	Turns []Turn
}

// Speakers returns each label once, in the order the engine first reported it.
func (r *Result) Speakers() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]bool)
	var labels []string
	for _, t := range r.Turns {
		if !seen[t.Speaker] {
			seen[t.Speaker] = true
			labels = append(labels, t.Speaker)
		}
	}
	return labels
}

// Diarizer splits an audio file into speaker turns.
type Diarizer interface {
	Diarize(ctx context.Context, audioPath string) (*Result, error)
	Name() string
}
