package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/meeting-minutes/internal/aligner"
	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/diarizer"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/pipeline"
	"github.com/nguyentantai21042004/meeting-minutes/internal/report"
	"github.com/nguyentantai21042004/meeting-minutes/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

const (
	// envConfigPath overrides the default config.yaml location.
	envConfigPath = "MINUTES_CONFIG"

	preflightTimeout = 3 * time.Second
)

func main() {
	// Load .env before config so GEMINI_API_KEY is visible
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	configPath := os.Getenv(envConfigPath)
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Ctrl+C cancels in-flight engine calls
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = logger.WithRunID(ctx, uuid.NewString())
	var logOut io.Writer = os.Stdout
	if cfg.Logging.File != "" {
		file := logger.RotatingFile(cfg.Logging.File, cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups, cfg.Logging.MaxAgeDays)
		defer file.Close()
		logOut = io.MultiWriter(os.Stdout, file)
	}
	log := logger.NewWithWriter(cfg.Logging.Level, cfg.Logging.Format, logOut)

	p, err := build(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize: %v", err)
		fmt.Println(err)
		return
	}

	audioPath, err := promptPath(os.Stdin, os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}

	out, err := p.Run(ctx, audioPath)
	if err != nil {
		log.Debug(ctx, "Run failed with code %s", pipeline.CodeOf(err))
		fmt.Println(err)
		return
	}

	fmt.Printf("✅ 회의록 저장 완료! 파일: %s\n", out.ReportPath)
}

// build wires every collaborator from cfg.
func build(ctx context.Context, cfg *config.Config, log logger.Logger) (pipeline.Pipeline, error) {
	exec := executor.New()

	tr, err := transcriber.New(cfg.Transcription, exec, log)
	if err != nil {
		return nil, err
	}

	di, err := diarizer.New(cfg.Diarization, exec, log)
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, "Transcriber: %s, diarizer: %s, model: %s", tr.Name(), di.Name(), cfg.Gemini.Model)
	preflight(ctx, log, tr.Name(), tr)
	preflight(ctx, log, di.Name(), di)

	return pipeline.New(pipeline.Deps{
		Extensions:  cfg.Audio.SupportedExtensions,
		Transcriber: tr,
		Diarizer:    di,
		Summarizer:  summarizer.New(cfg.Gemini, log),
		Writer:      report.New(cfg.Report, log),
		Alignment: aligner.Options{
			Order:    cfg.Alignment.Order,
			Straddle: cfg.Alignment.Straddle,
		},
	}, log), nil
}

// healthChecker is implemented by the HTTP sidecar backends.
type healthChecker interface {
	IsAvailable(ctx context.Context) bool
}

// preflight warns early when a sidecar is down. The run still goes ahead and
// fails with the stage's own error if the sidecar stays unreachable.
func preflight(ctx context.Context, log logger.Logger, name string, backend any) {
	hc, ok := backend.(healthChecker)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, preflightTimeout)
	defer cancel()

	if !hc.IsAvailable(ctx) {
		log.Warn(ctx, "%s sidecar is not reachable, the run will fail at that stage", name)
	}
}

// promptPath asks for the audio file path and returns the trimmed line.
func promptPath(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "🎤 음성 파일 경로 입력: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read audio path: %w", err)
	}
	return strings.TrimSpace(line), nil
}
