// Package config loads exporter settings. Values come from built-in
// defaults, then an optional TOML file, then environment variables (which
// may be set from a .env file).
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "scene2three.toml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SCENE2THREE_"

type Config struct {
	// ScenePath is the host scene file (.json, .yaml or .yml).
	ScenePath string `toml:"scene"`

	ThreeVersion string `toml:"three_version"`
	CDN          string `toml:"cdn"`

	// AssetDirName is the directory beside the HTML file receiving
	// exported geometry.
	AssetDirName string `toml:"asset_dir"`
	ScriptName   string `toml:"script_name"`
	LibraryName  string `toml:"library_name"`

	WriteHTML bool   `toml:"write_html"`
	PageTitle string `toml:"page_title"`

	LogLevel string `toml:"log_level"`
}

func Default() Config {
	return Config{
		ScenePath:    "scene.json",
		ThreeVersion: "0.129.0",
		CDN:          "https://cdn.skypack.dev",
		AssetDirName: "exported_gltfs",
		ScriptName:   "script.js",
		LibraryName:  "three.js",
		WriteHTML:    true,
		PageTitle:    "Three.js Scene",
		LogLevel:     "info",
	}
}

// Load reads path over the defaults. A missing file is not an error when
// path is DefaultPath. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultPath:
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.normalize(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv copies non-empty SCENE2THREE_* variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var env Config
	env.ScenePath = os.Getenv(EnvPrefix + "SCENE")
	env.ThreeVersion = os.Getenv(EnvPrefix + "THREE_VERSION")
	env.CDN = os.Getenv(EnvPrefix + "CDN")
	env.AssetDirName = os.Getenv(EnvPrefix + "ASSET_DIR")
	env.ScriptName = os.Getenv(EnvPrefix + "SCRIPT_NAME")
	env.LibraryName = os.Getenv(EnvPrefix + "LIBRARY_NAME")
	env.PageTitle = os.Getenv(EnvPrefix + "PAGE_TITLE")
	env.LogLevel = os.Getenv(EnvPrefix + "LOG_LEVEL")

	if err := copier.CopyWithOption(cfg, &env, copier.Option{IgnoreEmpty: true}); err != nil {
		return fmt.Errorf("apply environment: %w", err)
	}

	// IgnoreEmpty cannot tell false from unset.
	if v, ok := os.LookupEnv(EnvPrefix + "WRITE_HTML"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sWRITE_HTML: %w", EnvPrefix, err)
		}
		cfg.WriteHTML = b
	}
	return nil
}

func (c *Config) normalize() error {
	scene, err := homedir.Expand(c.ScenePath)
	if err != nil {
		return fmt.Errorf("scene path: %w", err)
	}
	c.ScenePath = scene

	v, err := semver.NewVersion(c.ThreeVersion)
	if err != nil {
		return fmt.Errorf("three_version %q: %w", c.ThreeVersion, err)
	}
	c.ThreeVersion = v.String()

	for _, name := range []string{c.AssetDirName, c.ScriptName, c.LibraryName} {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("output names must be plain file names, got %q", name)
		}
	}
	return nil
}

// LoadEnvFile sets environment variables from a KEY=VALUE file such as
// ".env". Empty lines and lines starting with # are skipped. The file may
// be missing; that is not an error.
func LoadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
		_ = os.Setenv(key, value)
	}
	return scanner.Err()
}
