package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	errs "github.com/matzehuels/takitaro/pkg/errors"
	"github.com/matzehuels/takitaro/pkg/pipeline"
)

// configFileName is the file looked up in the config directory.
const configFileName = "config.toml"

// fileConfig mirrors the export flags. Keys use the flag names with
// underscores.
type fileConfig struct {
	OutputDir         string `toml:"output_dir"`
	Prefix            string `toml:"prefix"`
	Enumerate         bool   `toml:"enumerate"`
	IncludeBackground bool   `toml:"include_background"`
	AnimationStyle    string `toml:"animation_style"`
	SkipUnmeasurable  bool   `toml:"skip_unmeasurable"`
	NoCache           bool   `toml:"no_cache"`
}

// config is a loaded configuration file.
type config struct {
	fileConfig

	// Path is the resolved file path, empty when no file was read.
	Path string

	meta toml.MetaData
}

// defined reports whether key was set in the file.
func (c *config) defined(key string) bool {
	return c.Path != "" && c.meta.IsDefined(key)
}

// loadConfig reads the configuration file.
//
// An explicit path must exist. Without one, the default location is used
// when a file is present there; otherwise an empty config is returned.
func loadConfig(path string) (*config, error) {
	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}
	cfg := &config{}
	if !exists {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(resolved, &cfg.fileConfig)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidOption, err, "parse config %s", resolved)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errs.New(errs.ErrCodeInvalidOption, "config %s: unknown keys: %s", resolved, strings.Join(keys, ", "))
	}

	cfg.Path = resolved
	cfg.meta = meta
	return cfg, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, errs.New(errs.ErrCodeFileNotFound, "config file not found: %s", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, errs.New(errs.ErrCodeInvalidOption, "config path is a directory: %s", expanded)
		}
		return expanded, true, nil
	}

	dir, err := configDir()
	if err != nil {
		return "", false, nil
	}
	defaultPath := filepath.Join(dir, configFileName)
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// apply copies file values into opts for every flag the user did not set.
func (c *config) apply(flags *pflag.FlagSet, opts *pipeline.Options, noCache *bool) error {
	use := func(key, flag string) bool {
		return c.defined(key) && !flags.Changed(flag)
	}

	if use("output_dir", "output-dir") {
		opts.OutputDir = c.OutputDir
	}
	if use("prefix", "prefix") {
		opts.Prefix = c.Prefix
	}
	if use("enumerate", "enumerate") {
		opts.Enumerate = c.Enumerate
	}
	if use("include_background", "include-background") {
		opts.IncludeBackground = c.IncludeBackground
	}
	if use("animation_style", "animation-style") {
		opts.AnimationStyle = c.AnimationStyle
	}
	if use("skip_unmeasurable", "skip-unmeasurable") {
		opts.SkipUnmeasurable = c.SkipUnmeasurable
	}
	if use("no_cache", "no-cache") {
		*noCache = c.NoCache
	}

	if opts.OutputDir != "" {
		dir, err := expandPath(opts.OutputDir)
		if err != nil {
			return err
		}
		opts.OutputDir = dir
	}
	return nil
}

// expandPath resolves a leading "~" to the home directory and makes the
// result absolute.
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			path = home
		} else if len(path) > 1 && (path[1] == '/' || path[1] == '\\') {
			path = filepath.Join(home, path[2:])
		}
	}
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", path, err)
	}
	return abs, nil
}
