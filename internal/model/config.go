package model

import "time"

// Config is the full ddrgen configuration, loaded from defaults, the config
// file (~/.ddrgen/config.yaml), DDRGEN_* environment variables, and flags.
type Config struct {
	Ingest      IngestConfig      `yaml:"ingest"`
	LLM         LLMConfig         `yaml:"llm"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Merge       MergeConfig       `yaml:"merge"`
	Output      OutputConfig      `yaml:"output"`
}

// IngestConfig controls Stage 1 PDF rendering and OCR
type IngestConfig struct {
	DPI                    int     `yaml:"dpi"`                      // page render resolution
	OCRConfidenceThreshold float64 `yaml:"ocr_confidence_threshold"` // drop spans below this (0-100)
	MaxPages               int     `yaml:"max_pages"`                // 0 = all pages
	ImagesSubdir           string  `yaml:"images_subdir"`            // where rendered PNGs go
}

// LLMConfig controls the extraction and reasoning model calls
type LLMConfig struct {
	Model          string        `yaml:"model"`           // extraction model
	ReasoningModel string        `yaml:"reasoning_model"` // Stage 3 model (falls back to Model)
	APIKey         string        `yaml:"-"`               // from GROQ_API_KEY / OPENAI_API_KEY, never persisted
	BaseURL        string        `yaml:"base_url"`        // OpenAI-compatible endpoint
	Timeout        time.Duration `yaml:"timeout"`
	MaxTokens      int           `yaml:"max_tokens"`
	MaxRetries     int           `yaml:"max_retries"` // schema-validation retries per chunk
}

// CacheConfig controls LLM response caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig controls worker counts and API rate limiting
type ConcurrencyConfig struct {
	PageWorkers       int     `yaml:"page_workers"`        // parallel page render+OCR jobs
	ReasoningWorkers  int     `yaml:"reasoning_workers"`   // parallel per-area reasoning jobs
	RequestsPerSecond float64 `yaml:"requests_per_second"` // per-host API rate limit
	Burst             int     `yaml:"burst"`
}

// MergeConfig holds the merge layer's sole tunable
type MergeConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"` // 0-1, higher = stricter de-dup
}

// OutputConfig controls where and how results are written
type OutputConfig struct {
	Dir           string `yaml:"dir"`
	Verbose       bool   `yaml:"verbose"`
	IncludeFooter bool   `yaml:"include_footer"` // footer in Markdown reports
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			DPI:                    150,
			OCRConfidenceThreshold: 55,
			MaxPages:               0,
			ImagesSubdir:           "page_images",
		},
		LLM: LLMConfig{
			Model:          "llama-3.3-70b-versatile",
			ReasoningModel: "openai/gpt-oss-120b",
			BaseURL:        "https://api.groq.com/openai/v1",
			Timeout:        60 * time.Second,
			MaxTokens:      4000,
			MaxRetries:     3,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			PageWorkers:       4,
			ReasoningWorkers:  2,
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Merge: MergeConfig{
			SimilarityThreshold: 0.92,
		},
		Output: OutputConfig{
			Dir:           "./outputs",
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
