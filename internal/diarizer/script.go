package diarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

// implScript runs a local pyannote helper script that prints
// {"turns":[{"start","end","track","speaker"}]} on stdout.
type implScript struct {
	cfg      config.DiarizationConfig
	executor executor.Executor
	logger   logger.Logger
}

type scriptOutput struct {
	Turns []Turn `json:"turns"`
	Error string `json:"error,omitempty"`
}

func (s *implScript) Name() string { return BackendPyannoteScript }

func (s *implScript) Diarize(ctx context.Context, audioPath string) (*Result, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	args := []string{s.cfg.ScriptPath, "--audio", audioPath}
	if s.cfg.Device != "" {
		args = append(args, "--device", s.cfg.Device)
	}
	if s.cfg.NumSpeakers > 0 {
		args = append(args, "--num-speakers", fmt.Sprint(s.cfg.NumSpeakers))
	}

	s.logger.Debug(ctx, "Running %s %s", s.cfg.Python, strings.Join(args, " "))

	out, err := s.executor.Execute(ctx, s.cfg.Python, args...)
	if err != nil {
		return nil, fmt.Errorf("pyannote script: %w", err)
	}

	var parsed scriptOutput
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return nil, fmt.Errorf("parse pyannote script output: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("pyannote script: %s", parsed.Error)
	}

	fillTracks(parsed.Turns)
	return &Result{Turns: parsed.Turns}, nil
}
