// Package config loads service settings from the environment and user
// input preferences from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultListenAddr = "0.0.0.0:8787"
	defaultDataDir    = "./data"
	defaultLogLevel   = "info"
	defaultTickMs     = 16
)

// Input sinks.
const (
	// SinkEcho only echoes RFB events back to the client.
	SinkEcho = "echo"
	// SinkLocal also injects events into the local Windows desktop.
	SinkLocal = "local"
)

// ErrPasswordRequired is returned when password mode is on and no password is set.
var ErrPasswordRequired = errors.New("UI_PASSWORD is required")

// Config holds runtime configuration values.
type Config struct {
	ListenAddr   string
	UIPassword   string
	PasswordMode bool
	DataDir      string
	PrefsPath    string
	LogLevel     string
	TickMs       int
	ICEServers   []string
	InputSink    string
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:   defaultListenAddr,
		DataDir:      defaultDataDir,
		PasswordMode: true,
		LogLevel:     defaultLogLevel,
		TickMs:       defaultTickMs,
		InputSink:    SinkEcho,
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.PrefsPath = envString("PREFS_PATH", filepath.Join(cfg.DataDir, "prefs.yaml"))
	cfg.LogLevel = strings.ToLower(envString("LOG_LEVEL", cfg.LogLevel))
	cfg.PasswordMode = envBool("PASSWORD_MODE", cfg.PasswordMode)
	cfg.UIPassword = strings.TrimSpace(os.Getenv("UI_PASSWORD"))
	cfg.ICEServers = envList("ICE_SERVERS")
	cfg.InputSink = strings.ToLower(envString("INPUT_SINK", cfg.InputSink))
	switch cfg.InputSink {
	case SinkEcho, SinkLocal:
	default:
		return Config{}, fmt.Errorf("INPUT_SINK must be %q or %q", SinkEcho, SinkLocal)
	}

	tick, err := envInt("TICK_MS", cfg.TickMs)
	if err != nil {
		return Config{}, err
	}
	if tick <= 0 {
		return Config{}, fmt.Errorf("TICK_MS must be > 0")
	}
	cfg.TickMs = tick

	if cfg.PasswordMode && cfg.UIPassword == "" {
		return Config{}, ErrPasswordRequired
	}

	return cfg, nil
}

// envList splits a comma-separated env value, dropping empty entries.
func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	if strings.HasPrefix(line, "export ") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	}
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", false
	}
	value = strings.Trim(value, `"'`)
	return key, value, true
}
