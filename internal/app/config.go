package app

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "quizbot/core/config"
	coredatabase "quizbot/core/database"
	"quizbot/internal/quiz"
)

// QuizConfig tunes the grading policy.
type QuizConfig struct {
	// Threshold is the minimal share of matched words for an answer to be
	// accepted. Zero means the default.
	Threshold float64 `yaml:"threshold" envconfig:"QUIZ_THRESHOLD"`
}

// VKConfig holds VK community bot credentials.
type VKConfig struct {
	Token   string `yaml:"token" envconfig:"VK_TOKEN"`
	GroupID int    `yaml:"group_id" envconfig:"VK_GROUP_ID"`
}

// Config aggregates all settings of the quiz bot family.
type Config struct {
	Core     coreconfig.Config   `yaml:"core"`
	Database coredatabase.Config `yaml:"database"`
	Quiz     QuizConfig          `yaml:"quiz"`
	VK       VKConfig            `yaml:"vk"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Core
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if cfg.Quiz.Threshold == 0 {
		cfg.Quiz.Threshold = quiz.DefaultThreshold
	}
	if cfg.Quiz.Threshold < 0 || cfg.Quiz.Threshold > 1 {
		return nil, fmt.Errorf("quiz.threshold %v outside [0, 1]", cfg.Quiz.Threshold)
	}

	return &cfg, nil
}

// LoadTelegram loads configuration and validates the Telegram section.
func LoadTelegram(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadVK loads configuration and validates the VK section.
func LoadVK(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.VK.Token == "" {
		return nil, fmt.Errorf("vk.token is required")
	}
	return cfg, nil
}
