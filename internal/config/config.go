package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	WorkerCount   int           `yaml:"worker_count"`
	EngineConfig  EngineConfig  `yaml:"engine"`
	OllamaConfig  OllamaConfig  `yaml:"ollama"`
	ScannerConfig ScannerConfig `yaml:"scanner"`
}

type EngineConfig struct {
	Model         string        `yaml:"model"`
	SchemaVersion string        `yaml:"schema_version"`
	Timeout       time.Duration `yaml:"timeout"`
	QuestionCount int           `yaml:"question_count"`
}

type OllamaConfig struct {
	BaseURL                 string        `yaml:"base_url"`
	Timeout                 time.Duration `yaml:"timeout"`
	Retries                 int           `yaml:"retries"`
	Backoff                 time.Duration `yaml:"backoff"`
	CircuitFailureThreshold int           `yaml:"circuit_failure_threshold"`
	CircuitReset            time.Duration `yaml:"circuit_reset"`
}

type ScannerConfig struct {
	// MinConfidence is the classification score below which an email is
	// reported but not logged as a response.
	MinConfidence float64 `yaml:"min_confidence"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("TRACK_ADDR", ":8080"),
		JWTSecret:     getEnv("TRACK_JWT_SECRET", "supersecretkey"),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("TRACK_DATABASE_PATH", "applytrack.db"),
		TokenDuration: 1 * time.Hour,
		WorkerCount:   2,
		EngineConfig: EngineConfig{
			Model:         getEnv("TRACK_MODEL", "llama3.2"),
			SchemaVersion: "v1",
			Timeout:       30 * time.Second,
			QuestionCount: 10,
		},
		OllamaConfig: OllamaConfig{
			BaseURL:                 getEnv("TRACK_OLLAMA_URL", "http://localhost:11434"),
			Timeout:                 30 * time.Second,
			Retries:                 2,
			Backoff:                 time.Second,
			CircuitFailureThreshold: 5,
			CircuitReset:            30 * time.Second,
		},
		ScannerConfig: ScannerConfig{
			MinConfidence: 0.4,
		},
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
