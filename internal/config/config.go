package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvGeminiAPIKey is consulted when gemini.api_key is left empty.
const EnvGeminiAPIKey = "GEMINI_API_KEY"

type Config struct {
	Audio         AudioConfig         `yaml:"audio"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Diarization   DiarizationConfig   `yaml:"diarization"`
	Alignment     AlignmentConfig     `yaml:"alignment"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	Report        ReportConfig        `yaml:"report"`
	Logging       LoggingConfig       `yaml:"logging"`
}

type AudioConfig struct {
	SupportedExtensions []string `yaml:"supported_extensions"`
}

type TranscriptionConfig struct {
	Backend     string        `yaml:"backend"` // whisper | whisper-cpp
	URL         string        `yaml:"url"`
	Model       string        `yaml:"model"`
	Language    string        `yaml:"language"`
	Device      string        `yaml:"device"`
	ComputeType string        `yaml:"compute_type"`
	BinaryPath  string        `yaml:"binary_path"`
	ModelPath   string        `yaml:"model_path"`
	Threads     int           `yaml:"threads"`
	Timeout     time.Duration `yaml:"timeout"`
}

type DiarizationConfig struct {
	Backend     string        `yaml:"backend"` // pyannote | pyannote-script
	URL         string        `yaml:"url"`
	Python      string        `yaml:"python"`
	ScriptPath  string        `yaml:"script_path"`
	Device      string        `yaml:"device"`
	NumSpeakers int           `yaml:"num_speakers"`
	MinSpeakers int           `yaml:"min_speakers"`
	MaxSpeakers int           `yaml:"max_speakers"`
	Timeout     time.Duration `yaml:"timeout"`
}

type AlignmentConfig struct {
	Order    string `yaml:"order"`    // discovery | chronological
	Straddle string `yaml:"straddle"` // drop | overlap
}

type GeminiConfig struct {
	APIKey          string        `yaml:"api_key"`
	Model           string        `yaml:"model"`
	BaseURL         string        `yaml:"base_url"`
	Temperature     float32       `yaml:"temperature"`
	TopP            float32       `yaml:"top_p"`
	TopK            float32       `yaml:"top_k"`
	MaxOutputTokens int32         `yaml:"max_output_tokens"`
	Timeout         time.Duration `yaml:"timeout"`
}

type ReportConfig struct {
	OutputDir string `yaml:"output_dir"`
	Docx      bool   `yaml:"docx"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File, when set, also writes logs to a rotating file.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns the built-in settings. Sampling parameters match the
// values the summary prompt was tuned with.
func Default() *Config {
	return &Config{
		Audio: AudioConfig{
			SupportedExtensions: []string{".mp3", ".wav", ".m4a", ".flac"},
		},
		Transcription: TranscriptionConfig{
			Backend:     "whisper",
			URL:         "http://localhost:8387",
			Model:       "medium",
			Device:      "auto",
			ComputeType: "float16",
			BinaryPath:  "whisper-cli",
			Threads:     4,
		},
		Diarization: DiarizationConfig{
			Backend:    "pyannote",
			URL:        "http://localhost:8388",
			Python:     "python3",
			ScriptPath: "scripts/pyannote_diarize.py",
			Device:     "auto",
		},
		Alignment: AlignmentConfig{
			Order:    "discovery",
			Straddle: "drop",
		},
		Gemini: GeminiConfig{
			Model:           "gemini-2.5-flash",
			Temperature:     0.4,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 2048,
		},
		Report: ReportConfig{
			OutputDir: ".",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		cfg.applyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

// LoadDotEnv loads .env files into the process environment when present.
// Variables already set are left alone.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load env file %s: %w", p, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = strings.TrimSpace(os.Getenv(EnvGeminiAPIKey))
	}
}

func (c *Config) Validate() error {
	if len(c.Audio.SupportedExtensions) == 0 {
		return fmt.Errorf("audio.supported_extensions is required")
	}
	for i, ext := range c.Audio.SupportedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Audio.SupportedExtensions[i] = ext
	}

	switch c.Transcription.Backend {
	case "":
		c.Transcription.Backend = "whisper"
	case "whisper", "whisper-cpp":
	default:
		return fmt.Errorf("transcription.backend must be whisper or whisper-cpp (got: %s)", c.Transcription.Backend)
	}
	if c.Transcription.Backend == "whisper" && c.Transcription.URL == "" {
		return fmt.Errorf("transcription.url is required")
	}
	if c.Transcription.Backend == "whisper-cpp" {
		if c.Transcription.BinaryPath == "" {
			return fmt.Errorf("transcription.binary_path is required")
		}
		if c.Transcription.ModelPath == "" {
			return fmt.Errorf("transcription.model_path is required")
		}
	}

	switch c.Diarization.Backend {
	case "":
		c.Diarization.Backend = "pyannote"
	case "pyannote", "pyannote-script":
	default:
		return fmt.Errorf("diarization.backend must be pyannote or pyannote-script (got: %s)", c.Diarization.Backend)
	}
	if c.Diarization.Backend == "pyannote" && c.Diarization.URL == "" {
		return fmt.Errorf("diarization.url is required")
	}
	if c.Diarization.Backend == "pyannote-script" && c.Diarization.ScriptPath == "" {
		return fmt.Errorf("diarization.script_path is required")
	}
	if c.Diarization.Python == "" {
		c.Diarization.Python = "python3"
	}

	if c.Alignment.Order == "" {
		c.Alignment.Order = "discovery"
	}
	if c.Alignment.Order != "discovery" && c.Alignment.Order != "chronological" {
		return fmt.Errorf("alignment.order must be discovery or chronological (got: %s)", c.Alignment.Order)
	}
	if c.Alignment.Straddle == "" {
		c.Alignment.Straddle = "drop"
	}
	if c.Alignment.Straddle != "drop" && c.Alignment.Straddle != "overlap" {
		return fmt.Errorf("alignment.straddle must be drop or overlap (got: %s)", c.Alignment.Straddle)
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.MaxOutputTokens <= 0 {
		c.Gemini.MaxOutputTokens = 2048
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("gemini.temperature must be within [0, 2] (got: %v)", c.Gemini.Temperature)
	}
	if c.Gemini.TopP < 0 || c.Gemini.TopP > 1 {
		return fmt.Errorf("gemini.top_p must be within [0, 1] (got: %v)", c.Gemini.TopP)
	}

	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "."
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
