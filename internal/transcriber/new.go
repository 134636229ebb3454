package transcriber

import (
	"fmt"
	"net/http"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

const (
	BackendWhisper    = "whisper"
	BackendWhisperCPP = "whisper-cpp"
)

// New creates the Transcriber selected by cfg.Backend.
func New(cfg config.TranscriptionConfig, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	switch cfg.Backend {
	case BackendWhisper, "":
		return &implWhisper{
			cfg:    cfg,
			client: &http.Client{Timeout: cfg.Timeout},
			logger: log,
		}, nil
	case BackendWhisperCPP:
		return &implWhisperCPP{
			cfg:      cfg,
			executor: exec,
			logger:   log,
		}, nil
	default:
		return nil, fmt.Errorf("unknown transcription backend: %s", cfg.Backend)
	}
}
