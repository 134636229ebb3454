package diarizer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meeting.flac")
	require.NoError(t, os.WriteFile(path, []byte("fLaC"), 0644))
	return path
}

type fakeExecutor struct {
	out   string
	err   error
	calls [][]string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.out, f.err
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func TestResultSpeakers(t *testing.T) {
	r := &Result{Turns: []Turn{
		{Start: 0, End: 1, Speaker: "SPEAKER_01"},
		{Start: 1, End: 2, Speaker: "SPEAKER_00"},
		{Start: 2, End: 3, Speaker: "SPEAKER_01"},
	}}
	assert.Equal(t, []string{"SPEAKER_01", "SPEAKER_00"}, r.Speakers())

	var empty *Result
	assert.Nil(t, empty.Speakers())
}

func TestFillTracks(t *testing.T) {
	turns := []Turn{
		{Speaker: "A"},
		{Speaker: "B"},
		{Speaker: "A", Track: "keep"},
		{Speaker: "A"},
	}
	fillTracks(turns)
	assert.Equal(t, []string{"A", "A", "keep", "C"}, []string{turns[0].Track, turns[1].Track, turns[2].Track, turns[3].Track})
	assert.Equal(t, "AA", trackName(26))
}

func TestPyannoteDiarize(t *testing.T) {
	t.Run("successful diarization", func(t *testing.T) {
		var fields map[string][]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/diarize" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			fields = r.MultipartForm.Value

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"num_speakers": 2,
				"segments": []map[string]interface{}{
					{"speaker_id": "SPEAKER_00", "start_time": 0.0, "end_time": 4.0},
					{"speaker_id": "SPEAKER_01", "start_time": 4.0, "end_time": 6.5, "track": "B"},
				},
			})
		}))
		defer server.Close()

		d, err := New(config.DiarizationConfig{URL: server.URL, NumSpeakers: 2, MaxSpeakers: 4, Device: "cuda"}, nil, logger.Nop())
		require.NoError(t, err)

		res, err := d.Diarize(context.Background(), writeAudio(t))
		require.NoError(t, err)

		assert.Equal(t, []Turn{
			{Start: 0, End: 4, Track: "A", Speaker: "SPEAKER_00"},
			{Start: 4, End: 6.5, Track: "B", Speaker: "SPEAKER_01"},
		}, res.Turns)
		assert.Equal(t, map[string][]string{
			"num_speakers": {"2"},
			"max_speakers": {"4"},
			"device":       {"cuda"},
		}, fields)
	})

	t.Run("error field in body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"error": "model not loaded"})
		}))
		defer server.Close()

		d, err := New(config.DiarizationConfig{URL: server.URL}, nil, logger.Nop())
		require.NoError(t, err)

		_, err = d.Diarize(context.Background(), writeAudio(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "model not loaded")
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		d, err := New(config.DiarizationConfig{URL: server.URL}, nil, logger.Nop())
		require.NoError(t, err)

		_, err = d.Diarize(context.Background(), writeAudio(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})
}

func TestPyannoteIsAvailable(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"healthy", healthy.URL + "/", true},
		{"unhealthy status", failing.URL, false},
		{"unreachable", "http://127.0.0.1:1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(config.DiarizationConfig{URL: tt.url}, nil, logger.Nop())
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.(*implPyannote).IsAvailable(context.Background()))
		})
	}
}

func TestScriptDiarize(t *testing.T) {
	exec := &fakeExecutor{out: `{"turns":[{"start":0,"end":5,"speaker":"SPEAKER_00"},{"start":5,"end":9,"track":"X","speaker":"SPEAKER_01"}]}`}
	cfg := config.DiarizationConfig{Backend: "pyannote-script", Python: "python3", ScriptPath: "scripts/pyannote_diarize.py", Device: "cpu"}

	d, err := New(cfg, exec, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, BackendPyannoteScript, d.Name())

	audio := writeAudio(t)
	res, err := d.Diarize(context.Background(), audio)
	require.NoError(t, err)

	assert.Equal(t, []Turn{
		{Start: 0, End: 5, Track: "A", Speaker: "SPEAKER_00"},
		{Start: 5, End: 9, Track: "X", Speaker: "SPEAKER_01"},
	}, res.Turns)
	require.Len(t, exec.calls, 1)
	assert.Equal(t, []string{"python3", "scripts/pyannote_diarize.py", "--audio", audio, "--device", "cpu"}, exec.calls[0])
}

func TestScriptDiarizeFailures(t *testing.T) {
	tests := []struct {
		name string
		exec *fakeExecutor
	}{
		{"command fails", &fakeExecutor{err: errors.New("exit status 1")}},
		{"garbage output", &fakeExecutor{out: "Traceback (most recent call last)"}},
		{"error reported", &fakeExecutor{out: `{"error":"HF token missing"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(config.DiarizationConfig{Backend: "pyannote-script", Python: "python3", ScriptPath: "s.py"}, tt.exec, logger.Nop())
			require.NoError(t, err)

			_, err = d.Diarize(context.Background(), "meeting.wav")
			assert.Error(t, err)
		})
	}
}
