package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultConfigPath = "~/.config/toggl-cli/config.toml"

// Config holds the CLI configuration, merged from an optional TOML file and
// environment variables (environment wins).
type Config struct {
	Toggl struct {
		APIToken    string
		Email       string
		Password    string
		WorkspaceID int64
		BaseURL     string // default: https://api.track.toggl.com
		UserAgent   string
		CABundle    string // optional supplementary PEM bundle
	}
	HTTP struct {
		Timeout time.Duration
	}
}

// fileConfig mirrors the TOML layout.
type fileConfig struct {
	APIToken       string `toml:"api_token"`
	Email          string `toml:"email"`
	Password       string `toml:"password"`
	WorkspaceID    int64  `toml:"workspace_id"`
	BaseURL        string `toml:"base_url"`
	UserAgent      string `toml:"user_agent"`
	CABundle       string `toml:"ca_bundle"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Load reads the TOML file at path (the default location when path is
// empty; a missing file is fine), then applies environment overrides.
// Either TOGGL_API_TOKEN or TOGGL_EMAIL/TOGGL_PASSWORD must be present
// after merging.
func Load(path string) (Config, error) {
	var cfg Config

	resolved, err := resolvePath(path)
	if err != nil {
		return cfg, err
	}
	raw, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		var f fileConfig
		if err := toml.Unmarshal(raw, &f); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", resolved, err)
		}
		cfg.Toggl.APIToken = f.APIToken
		cfg.Toggl.Email = f.Email
		cfg.Toggl.Password = f.Password
		cfg.Toggl.WorkspaceID = f.WorkspaceID
		cfg.Toggl.BaseURL = f.BaseURL
		cfg.Toggl.UserAgent = f.UserAgent
		cfg.Toggl.CABundle = f.CABundle
		cfg.HTTP.Timeout = time.Duration(f.TimeoutSeconds) * time.Second
	case errors.Is(err, os.ErrNotExist):
		// No file; environment alone must carry the credentials.
	default:
		return cfg, fmt.Errorf("read config %s: %w", resolved, err)
	}

	if v := os.Getenv("TOGGL_API_TOKEN"); v != "" {
		cfg.Toggl.APIToken = v
	}
	if v := os.Getenv("TOGGL_EMAIL"); v != "" {
		cfg.Toggl.Email = v
	}
	if v := os.Getenv("TOGGL_PASSWORD"); v != "" {
		cfg.Toggl.Password = v
	}
	if ws := os.Getenv("TOGGL_WORKSPACE_ID"); ws != "" {
		v, err := strconv.ParseInt(ws, 10, 64)
		if err != nil {
			return cfg, errors.New("TOGGL_WORKSPACE_ID must be an integer")
		}
		cfg.Toggl.WorkspaceID = v
	}
	if v := os.Getenv("TOGGL_BASE_URL"); v != "" {
		cfg.Toggl.BaseURL = v
	}
	if v := os.Getenv("TOGGL_USER_AGENT"); v != "" {
		cfg.Toggl.UserAgent = v
	}
	if v := os.Getenv("TOGGL_CA_BUNDLE"); v != "" {
		cfg.Toggl.CABundle = v
	}
	if v := os.Getenv("TOGGL_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, errors.New("TOGGL_HTTP_TIMEOUT must be a duration like 30s")
		}
		cfg.HTTP.Timeout = d
	}

	if cfg.Toggl.APIToken == "" && (cfg.Toggl.Email == "" || cfg.Toggl.Password == "") {
		return cfg, errors.New("either TOGGL_API_TOKEN or TOGGL_EMAIL and TOGGL_PASSWORD are required")
	}
	return cfg, nil
}

// resolvePath expands a leading ~ and falls back to the default location.
func resolvePath(path string) (string, error) {
	if path == "" {
		path = defaultConfigPath
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
