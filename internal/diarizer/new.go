package diarizer

import (
	"fmt"
	"net/http"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

const (
	BackendPyannote       = "pyannote"
	BackendPyannoteScript = "pyannote-script"
)

// New creates the Diarizer selected by cfg.Backend.
func New(cfg config.DiarizationConfig, exec executor.Executor, log logger.Logger) (Diarizer, error) {
	switch cfg.Backend {
	case BackendPyannote, "":
		return &implPyannote{
			cfg:    cfg,
			client: &http.Client{Timeout: cfg.Timeout},
			logger: log,
		}, nil
	case BackendPyannoteScript:
		return &implScript{
			cfg:      cfg,
			executor: exec,
			logger:   log,
		}, nil
	default:
		return nil, fmt.Errorf("unknown diarization backend: %s", cfg.Backend)
	}
}

// fillTracks assigns A, B, ... to turns the engine left without a track id,
// counting per speaker.
func fillTracks(turns []Turn) {
	counts := make(map[string]int)
	for i := range turns {
		n := counts[turns[i].Speaker]
		counts[turns[i].Speaker] = n + 1
		if turns[i].Track == "" {
			turns[i].Track = trackName(n)
		}
	}
}

func trackName(n int) string {
	name := ""
	for {
		name = string(rune('A'+n%26)) + name
		n = n/26 - 1
		if n < 0 {
			return name
		}
	}
}
