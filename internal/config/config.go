package config

import (
	"encoding/json"
	"os"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Provider      ProviderConfig      `mapstructure:"provider"`
	Transcription TranscriptionConfig `mapstructure:"transcription"`
	Audio         AudioConfig         `mapstructure:"audio"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Listen       string        `mapstructure:"listen"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ProviderConfig holds voice-cloning provider settings. The API key is not
// validated at startup; a missing key surfaces as per-request provider
// errors.
type ProviderConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// TranscriptionConfig holds speech-to-text settings. An empty API key
// disables transcription rather than failing startup.
type TranscriptionConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Language string `mapstructure:"language"`
}

// AudioConfig holds intake and output settings. ResponseMode selects how
// generated speech returns to the client: "file" serves it from the
// generated dir, "inline" embeds it as a base64 data URL.
type AudioConfig struct {
	UploadDir    string `mapstructure:"upload_dir"`
	GeneratedDir string `mapstructure:"generated_dir"`
	ResponseMode string `mapstructure:"response_mode"`
	WaitlistFile string `mapstructure:"waitlist_file"`
}

// AuthConfig holds optional bearer-token settings for the server's own API.
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Accepted values for AudioConfig.ResponseMode.
const (
	ResponseModeFile   = "file"
	ResponseModeInline = "inline"
)

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:       "0.0.0.0:3000",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		Provider: ProviderConfig{
			BaseURL: "https://api.fish.audio",
			Timeout: 120 * time.Second,
		},
		Transcription: TranscriptionConfig{
			Language: "en",
		},
		Audio: AudioConfig{
			UploadDir:    "uploads",
			GeneratedDir: "generated",
			ResponseMode: ResponseModeFile,
			WaitlistFile: "waitlist.json",
		},
		Auth: AuthConfig{
			APIKey: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load returns a Config populated with defaults and environment overrides.
func Load() (*Config, error) {
	return LoadWithDefaults(nil)
}

// LoadWithDefaults loads configuration using defaults and an optional
// overrides map (for tests).
func LoadWithDefaults(overrides map[string]interface{}) (*Config, error) {
	cfg := Default()
	applyEnvOverrides(cfg)

	if overrides != nil {
		raw, err := json.Marshal(overrides)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VOXMOD_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	// PORT is the name the original deployment used.
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Listen = "0.0.0.0:" + v
	}
	if v := os.Getenv("VOXMOD_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if v := os.Getenv("VOXMOD_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if v := os.Getenv("FISH_AUDIO_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("FISH_AUDIO_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("VOXMOD_PROVIDER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Provider.Timeout = d
		}
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Transcription.APIKey = v
	}
	if v := os.Getenv("VOXMOD_LANGUAGE"); v != "" {
		cfg.Transcription.Language = v
	}
	if v := os.Getenv("VOXMOD_UPLOAD_DIR"); v != "" {
		cfg.Audio.UploadDir = v
	}
	if v := os.Getenv("VOXMOD_GENERATED_DIR"); v != "" {
		cfg.Audio.GeneratedDir = v
	}
	if v := os.Getenv("VOXMOD_AUDIO_RESPONSE"); v != "" {
		cfg.Audio.ResponseMode = v
	}
	if v := os.Getenv("VOXMOD_WAITLIST_FILE"); v != "" {
		cfg.Audio.WaitlistFile = v
	}
	if v := os.Getenv("VOXMOD_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("VOXMOD_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("VOXMOD_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
