package keymap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const configFile = "keymap.json"

// Config holds user overrides from keymap.json. Bindings maps
// "context:key" (or a bare key for the global context) to a command, e.g.
// {"features:t": "toggle-feature", "ctrl+y": "copy-command"}.
type Config struct {
	Bindings map[string]string `json:"bindings"`
}

// ConfigPath returns where overrides live inside the data directory.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, configFile)
}

// LoadConfig reads overrides from path. A missing file is an empty config.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
	}
	if cfg.Bindings == nil {
		cfg.Bindings = map[string]string{}
	}
	return cfg, nil
}

// ApplyConfig installs the overrides that name a known context and command.
// The rest are skipped and reported together in the returned error.
func ApplyConfig(r *Registry, cfg *Config) error {
	contexts, commands := r.known()

	entries := make([]string, 0, len(cfg.Bindings))
	for k := range cfg.Bindings {
		entries = append(entries, k)
	}
	sort.Strings(entries)

	var errs []error
	for _, entry := range entries {
		ctx, key := parseBinding(entry)
		cmd := Command(strings.TrimSpace(cfg.Bindings[entry]))
		switch {
		case key == "":
			errs = append(errs, fmt.Errorf("%q: empty key", entry))
		case !contexts[ctx]:
			errs = append(errs, fmt.Errorf("%q: unknown context %q", entry, ctx))
		case !commands[cmd]:
			errs = append(errs, fmt.Errorf("%q: unknown command %q", entry, cmd))
		default:
			r.SetUserOverride(ctx, key, cmd)
		}
	}
	return errors.Join(errs...)
}

// parseBinding splits "context:key". Without a context the key is global.
// Sequences are normalized to single spaces ("g  g" -> "g g").
func parseBinding(s string) (Context, string) {
	ctx, key, found := strings.Cut(s, ":")
	switch {
	case !found:
		ctx, key = string(ContextGlobal), s
	case ctx == "" && key == "":
		return ContextGlobal, ":"
	}
	return Context(strings.TrimSpace(ctx)), strings.Join(strings.Fields(key), " ")
}

// known lists the contexts and commands the registry has bindings for.
func (r *Registry) known() (map[Context]bool, map[Command]bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	contexts := map[Context]bool{ContextGlobal: true}
	commands := map[Command]bool{}
	for ctx, bs := range r.bindings {
		contexts[ctx] = true
		for _, b := range bs {
			commands[b.Command] = true
		}
	}
	return contexts, commands
}
