// Package config resolves the data directory and reads and writes the user
// defaults stored in config.json there.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

const (
	configFile = "config.json"
	lockFile   = "config.json.lock"
	appDir     = "devsetup"
)

// Environment variables.
const (
	EnvHome       = "DEVSETUP_HOME"
	EnvLogLevel   = "DEVSETUP_LOG_LEVEL"
	EnvLogFormat  = "DEVSETUP_LOG_FORMAT"
	EnvListenAddr = "DEVSETUP_LISTEN_ADDR"
	EnvGitHubAPI  = "DEVSETUP_GITHUB_API"
)

// Defaults
const (
	DefaultPackageManager = "npm"
	DefaultFramework      = "react"
	DefaultProjectName    = "my-app"
	DefaultLoginDelay     = time.Second
	DefaultStarsTTL       = 6 * time.Hour
	DefaultListenAddr     = "127.0.0.1:8787"
)

// Config holds user defaults. Empty fields mean "use the default".
type Config struct {
	PackageManager string `json:"package_manager,omitempty"`
	Framework      string `json:"framework,omitempty"`
	ProjectName    string `json:"project_name,omitempty"`
	LoginDelay     string `json:"login_delay,omitempty"`
	StarsTTL       string `json:"stars_ttl,omitempty"`
}

// LoadDotEnv loads a .env file from the working directory if present.
// Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// DataDir returns $DEVSETUP_HOME, else <user config dir>/devsetup.
func DataDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// Load reads the config from disk
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}
	return &cfg, nil
}

// Save writes the config to disk using atomic write (temp file + rename)
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, filepath.Join(dir, configFile))
}

// withConfigLock serializes access to config.json using flock
func withConfigLock(dir string, fn func() error) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, lockFile), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return err
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}

// key describes one settable config field.
type key struct {
	get      func(*Config) string
	set      func(*Config, string)
	def      string
	validate func(string) error
}

var keys = map[string]key{
	"package_manager": {
		get: func(c *Config) string { return c.PackageManager },
		set: func(c *Config, v string) { c.PackageManager = v },
		def: DefaultPackageManager,
		validate: func(v string) error {
			switch v {
			case "npm", "yarn", "pnpm":
				return nil
			}
			return fmt.Errorf("must be npm, yarn or pnpm")
		},
	},
	"framework": {
		get: func(c *Config) string { return c.Framework },
		set: func(c *Config, v string) { c.Framework = v },
		def: DefaultFramework,
	},
	"project_name": {
		get: func(c *Config) string { return c.ProjectName },
		set: func(c *Config, v string) { c.ProjectName = v },
		def: DefaultProjectName,
	},
	"login_delay": {
		get:      func(c *Config) string { return c.LoginDelay },
		set:      func(c *Config, v string) { c.LoginDelay = v },
		def:      DefaultLoginDelay.String(),
		validate: validateDuration,
	},
	"stars_ttl": {
		get:      func(c *Config) string { return c.StarsTTL },
		set:      func(c *Config, v string) { c.StarsTTL = v },
		def:      DefaultStarsTTL.String(),
		validate: validateDuration,
	},
}

func validateDuration(v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("not a duration: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// Keys returns the settable keys in order.
func Keys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Get returns the effective value of key, falling back to its default.
func (c *Config) Get(name string) (string, error) {
	k, ok := keys[name]
	if !ok {
		return "", fmt.Errorf("unknown config key %q (valid: %s)", name, strings.Join(Keys(), ", "))
	}
	if v := k.get(c); v != "" {
		return v, nil
	}
	return k.def, nil
}

// Set validates value and writes it under key. An empty value resets the
// key to its default.
func Set(dir, name, value string) error {
	k, ok := keys[name]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid: %s)", name, strings.Join(Keys(), ", "))
	}
	if value != "" && k.validate != nil {
		if err := k.validate(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return withConfigLock(dir, func() error {
		cfg, err := Load(dir)
		if err != nil {
			return err
		}
		k.set(cfg, value)
		return Save(dir, cfg)
	})
}

func (c *Config) duration(name string, def time.Duration) time.Duration {
	v, _ := c.Get(name)
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}

// LoginDelayDuration is the mock login delay.
func (c *Config) LoginDelayDuration() time.Duration {
	return c.duration("login_delay", DefaultLoginDelay)
}

// StarsTTLDuration is the star cache lifetime.
func (c *Config) StarsTTLDuration() time.Duration {
	return c.duration("stars_ttl", DefaultStarsTTL)
}

// ListenAddr returns the serve address from the environment or the default.
func ListenAddr() string {
	if v := os.Getenv(EnvListenAddr); v != "" {
		return v
	}
	return DefaultListenAddr
}

// GitHubAPI returns an override for the GitHub API root, or "".
func GitHubAPI() string {
	return os.Getenv(EnvGitHubAPI)
}
