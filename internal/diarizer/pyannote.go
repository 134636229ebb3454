package diarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

// implPyannote talks to a pyannote HTTP sidecar.
type implPyannote struct {
	cfg    config.DiarizationConfig
	client *http.Client
	logger logger.Logger
}

type pyannoteResponse struct {
	Segments    []pyannoteSegment `json:"segments"`
	NumSpeakers int               `json:"num_speakers"`
	Error       string            `json:"error,omitempty"`
}

type pyannoteSegment struct {
	SpeakerID string  `json:"speaker_id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Track     string  `json:"track,omitempty"`
}

func (p *implPyannote) Name() string { return BackendPyannote }

// IsAvailable reports whether the sidecar answers its health endpoint.
func (p *implPyannote) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(p.cfg.URL, "/")+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (p *implPyannote) Diarize(ctx context.Context, audioPath string) (*Result, error) {
	audio, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer audio.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("audio", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("write audio data: %w", err)
	}

	fields := map[string]string{"device": p.cfg.Device}
	if p.cfg.NumSpeakers > 0 {
		fields["num_speakers"] = strconv.Itoa(p.cfg.NumSpeakers)
	}
	if p.cfg.MinSpeakers > 0 {
		fields["min_speakers"] = strconv.Itoa(p.cfg.MinSpeakers)
	}
	if p.cfg.MaxSpeakers > 0 {
		fields["max_speakers"] = strconv.Itoa(p.cfg.MaxSpeakers)
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	url := strings.TrimRight(p.cfg.URL, "/") + "/diarize"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	p.logger.Debug(ctx, "POST %s", url)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("diarization request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("diarization error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result pyannoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode diarization response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("diarization error: %s", result.Error)
	}

	turns := make([]Turn, len(result.Segments))
	for i, seg := range result.Segments {
		turns[i] = Turn{
			Start:   seg.StartTime,
			End:     seg.EndTime,
			Track:   seg.Track,
			Speaker: seg.SpeakerID,
		}
	}
	fillTracks(turns)

	p.logger.Debug(ctx, "pyannote returned %d turns, %d speakers", len(turns), result.NumSpeakers)
	return &Result{Turns: turns}, nil
}
