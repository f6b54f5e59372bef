package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lingolabs/phraseo/pkg/phraseo/internalerr"
)

// Config is the top-level translation configuration.
type Config struct {
	Decoder DecoderConfig `yaml:"decoder"`
	Model   ModelConfig   `yaml:"model"`
	Paths   Paths         `yaml:"paths"`
}

// DecoderConfig holds the search parameters.
type DecoderConfig struct {
	BeamWidth       int     `yaml:"beam_width"`
	DistortionAlpha float64 `yaml:"distortion_alpha"`
	MaxExpansions   int     `yaml:"max_expansions"`
}

// ModelConfig holds the language model parameters used when estimating a
// model from a corpus rather than loading one.
type ModelConfig struct {
	Order   int     `yaml:"order"`
	Backoff float64 `yaml:"backoff"`
}

// Paths points to the static artifacts consumed by the decoder.
type Paths struct {
	PhraseTable   string `yaml:"phrase_table"`
	LanguageModel string `yaml:"language_model"`
	Database      string `yaml:"database"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Decoder: DecoderConfig{
			BeamWidth:       200,
			DistortionAlpha: 0.5,
		},
		Model: ModelConfig{
			Order:   3,
			Backoff: 0.4,
		},
	}
}

// Load reads a YAML configuration file. Absent fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the parameter ranges.
func (c *Config) Validate() error {
	if c.Decoder.BeamWidth <= 0 {
		return fmt.Errorf("decoder.beam_width must be positive, got %d: %w", c.Decoder.BeamWidth, internalerr.ErrInvalidConfig)
	}
	if c.Decoder.DistortionAlpha <= 0 || c.Decoder.DistortionAlpha >= 1 {
		return fmt.Errorf("decoder.distortion_alpha must be in (0,1), got %g: %w", c.Decoder.DistortionAlpha, internalerr.ErrInvalidConfig)
	}
	if c.Decoder.MaxExpansions < 0 {
		return fmt.Errorf("decoder.max_expansions must not be negative, got %d: %w", c.Decoder.MaxExpansions, internalerr.ErrInvalidConfig)
	}
	if c.Model.Order < 1 {
		return fmt.Errorf("model.order must be at least 1, got %d: %w", c.Model.Order, internalerr.ErrInvalidConfig)
	}
	if c.Model.Backoff <= 0 || c.Model.Backoff >= 1 {
		return fmt.Errorf("model.backoff must be in (0,1), got %g: %w", c.Model.Backoff, internalerr.ErrInvalidConfig)
	}
	return nil
}
