package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

const whisperCPPOutputPrefix = "transcript"

// implWhisperCPP runs a local whisper.cpp binary and reads back its SRT output.
type implWhisperCPP struct {
	cfg      config.TranscriptionConfig
	executor executor.Executor
	logger   logger.Logger
}

func (w *implWhisperCPP) Name() string { return BackendWhisperCPP }

func (w *implWhisperCPP) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	if w.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.cfg.Timeout)
		defer cancel()
	}

	absAudio, err := filepath.Abs(audioPath)
	if err != nil {
		return nil, fmt.Errorf("resolve audio path: %w", err)
	}

	// whisper.cpp writes <prefix>.srt next to the working dir; keep each run isolated
	workDir, err := os.MkdirTemp("", "minutes-whisper-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	language := w.cfg.Language
	if language == "" {
		language = "auto"
	}

	// -osrt: SRT output
	// -sow: split on word boundaries
	// -of: output prefix inside workDir
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", absAudio,
		"-osrt",
		"-sow",
		"-l", language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-of", whisperCPPOutputPrefix,
	}

	w.logger.Debug(ctx, "Running %s with %d threads in %s", w.cfg.BinaryPath, w.cfg.Threads, workDir)

	if _, err := w.executor.ExecuteInDir(ctx, workDir, w.cfg.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper.cpp transcribe: %w", err)
	}

	srt, err := os.ReadFile(filepath.Join(workDir, whisperCPPOutputPrefix+".srt"))
	if err != nil {
		return nil, fmt.Errorf("read srt output: %w", err)
	}

	segments, err := ParseSRT(string(srt))
	if err != nil {
		return nil, fmt.Errorf("parse srt output: %w", err)
	}
	return segments, nil
}
