package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config is the root configuration for tjt, stored in ~/.tjt/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	API APIConfig `json:"api"`
	Log LogConfig `json:"log"`
}

// APIConfig describes the remote applications resource.
type APIConfig struct {
	// BaseURL is the server root; requests go to BaseURL + "/applications/".
	BaseURL string `json:"base_url"`
	// Token is an optional static bearer token. Prefer `tjt login` or
	// TJT_API_TOKEN so the credential stays out of the config file.
	Token string `json:"token"`
}

// LogConfig controls the diagnostic log written to stderr.
type LogConfig struct {
	// Level is a logrus level name: debug, info, warn, error.
	Level string `json:"level"`
}

const (
	// DefaultBaseURL is where the applications API listens in local development.
	DefaultBaseURL = "http://localhost:8000"
	// DefaultLogLevel keeps the diagnostic channel quiet unless something fails.
	DefaultLogLevel = "warn"
)

// Environment overrides, applied after the config file.
const (
	EnvBaseURL  = "TJT_BASE_URL"
	EnvAPIToken = "TJT_API_TOKEN"
	EnvLogLevel = "TJT_LOG_LEVEL"
	EnvHome     = "TJT_HOME"
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// tjt configuration – ~/.tjt/config.json
//
// All settings are optional. Environment variables (also read from a .env
// file in the working directory) override the values below:
//   TJT_BASE_URL, TJT_API_TOKEN, TJT_LOG_LEVEL
{
  // ── Applications API ────────────────────────────────────────────────────
  "api": {
    // Root URL of the job applications server.
    "base_url": "http://localhost:8000",

    // Static bearer token. Leave empty and run: tjt login --token <token>
    "token": ""
  },

  // ── Diagnostics ─────────────────────────────────────────────────────────
  "log": {
    // One of: debug, info, warn, error
    "level": "warn"
  }
}
`

// BaseDir returns the root data directory (~/.tjt), or $TJT_HOME when set.
func BaseDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tjt"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads <BaseDir>/config.json and applies environment overrides.
func Load() (Config, error) {
	base, err := BaseDir()
	if err != nil {
		return withEnv(defaultConfig()), err
	}
	return LoadFile(filepath.Join(base, "config.json"))
}

// LoadFile reads the config at path, creating it with annotated defaults on
// first run, then applies environment overrides.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return withEnv(defaultConfig()), nil
	}
	if err != nil {
		return withEnv(defaultConfig()), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return withEnv(defaultConfig()), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}

	return withEnv(cfg), nil
}

// withEnv applies TJT_* environment overrides.
func withEnv(cfg Config) Config {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")
	return cfg
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
