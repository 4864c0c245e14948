package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	errs "github.com/matzehuels/takitaro/pkg/errors"
	"github.com/matzehuels/takitaro/pkg/pipeline"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigExplicit(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
output_dir = "/tmp/anims"
enumerate = true
animation_style = "linear"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
	if cfg.OutputDir != "/tmp/anims" || !cfg.Enumerate || cfg.AnimationStyle != "linear" {
		t.Errorf("decoded %+v", cfg.fileConfig)
	}
	if !cfg.defined("enumerate") {
		t.Error("enumerate should be defined")
	}
	if cfg.defined("prefix") {
		t.Error("prefix should not be defined")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		content string
		code    errs.Code
	}{
		{"missing file", filepath.Join(dir, "nope.toml"), "", errs.ErrCodeFileNotFound},
		{"unknown key", "unknown", "colour = \"red\"\n", errs.ErrCodeInvalidOption},
		{"malformed", "malformed", "enumerate = \n", errs.ErrCodeInvalidOption},
		{"wrong type", "wrongtype", "enumerate = \"yes\"\n", errs.ErrCodeInvalidOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if tt.content != "" {
				path = writeConfig(t, filepath.Join(dir, tt.path), tt.content)
			}
			_, err := loadConfig(path)
			if !errs.Is(err, tt.code) {
				t.Errorf("loadConfig error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadConfigDirectory(t *testing.T) {
	_, err := loadConfig(t.TempDir())
	if !errs.Is(err, errs.ErrCodeInvalidOption) {
		t.Errorf("loadConfig(dir) error = %v, want INVALID_OPTION", err)
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig without file: %v", err)
	}
	if cfg.Path != "" || cfg.defined("enumerate") {
		t.Errorf("expected empty config, got %+v", cfg)
	}

	path := writeConfig(t, filepath.Join(home, appName), "enumerate = true\n")
	cfg, err = loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig with default file: %v", err)
	}
	if cfg.Path != path || !cfg.Enumerate {
		t.Errorf("loadConfig() = %+v, want file %s with enumerate", cfg, path)
	}
}

func TestConfigApplyFlagPrecedence(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
output_dir = "~/anims"
enumerate = true
include_background = true
animation_style = "ease-in"
no_cache = true
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{AnimationStyle: pipeline.DefaultAnimationStyle}
	var noCache bool
	fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
	fs.SetNormalizeFunc(underscoreFlags)
	addExportFlags(fs, &opts)
	fs.BoolVar(&noCache, "no-cache", false, "")
	if err := fs.Parse([]string{"--enumerate=false", "--animation_style", "linear"}); err != nil {
		t.Fatal(err)
	}

	if err := cfg.apply(fs, &opts, &noCache); err != nil {
		t.Fatalf("apply error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "anims"); opts.OutputDir != want {
		t.Errorf("OutputDir = %q, want %q", opts.OutputDir, want)
	}
	if opts.Enumerate {
		t.Error("Enumerate: explicit flag should win over config")
	}
	if opts.AnimationStyle != "linear" {
		t.Errorf("AnimationStyle = %q, want linear", opts.AnimationStyle)
	}
	if !opts.IncludeBackground {
		t.Error("IncludeBackground should come from config")
	}
	if !noCache {
		t.Error("no_cache should come from config")
	}
}

func TestConfigApplyEmpty(t *testing.T) {
	opts := pipeline.Options{AnimationStyle: pipeline.DefaultAnimationStyle}
	var noCache bool
	fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
	addExportFlags(fs, &opts)

	if err := (&config{}).apply(fs, &opts, &noCache); err != nil {
		t.Fatal(err)
	}
	if opts.OutputDir != "" || opts.AnimationStyle != pipeline.DefaultAnimationStyle || noCache {
		t.Errorf("empty config changed options: %+v", opts)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	wd, _ := os.Getwd()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/out", filepath.Join(home, "out")},
		{"/abs/./dir/", "/abs/dir"},
		{"rel", filepath.Join(wd, "rel")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := expandPath(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
