// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prefs loads presentation preferences for command-line programs:
// output width, colour and logging. Preferences never supply command
// arguments.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/yeetrun/cmdline/pkg/fileutil"
	"github.com/yeetrun/cmdline/pkg/tui"
	"gopkg.in/yaml.v3"
)

// File names searched for, in order, in each directory.
var FileNames = []string{".cmdline.toml", ".cmdline.yaml", ".cmdline.yml"}

type Prefs struct {
	Width        int    `toml:"width,omitempty" yaml:"width,omitempty"`
	Color        string `toml:"color,omitempty" yaml:"color,omitempty"`
	LogLevel     string `toml:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFile      string `toml:"log_file,omitempty" yaml:"log_file,omitempty"`
	StrictSlices bool   `toml:"strict_slices,omitempty" yaml:"strict_slices,omitempty"`
}

// Load finds the nearest preferences file at or above startDir, reads it
// and applies environment overrides. Path is "" when no file was found.
func Load(startDir string) (p Prefs, path string, err error) {
	path, err = findPrefsPath(startDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		path = ""
	case err != nil:
		return Prefs{}, "", err
	default:
		if p, err = LoadFile(path); err != nil {
			return Prefs{}, "", err
		}
	}
	if err := p.ApplyEnv(os.Getenv); err != nil {
		return Prefs{}, "", err
	}
	return p, path, nil
}

// LoadFromCwd is Load starting at the working directory.
func LoadFromCwd() (Prefs, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Prefs{}, "", err
	}
	return Load(cwd)
}

// LoadFile reads a TOML or YAML preferences file, chosen by extension.
func LoadFile(path string) (Prefs, error) {
	var p Prefs
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return Prefs{}, err
		}
		if err := yaml.Unmarshal(b, &p); err != nil {
			return Prefs{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		if _, err := toml.DecodeFile(path, &p); err != nil {
			return Prefs{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	if err := p.Validate(); err != nil {
		return Prefs{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ApplyEnv overrides p from CMDLINE_WIDTH, CMDLINE_COLOR,
// CMDLINE_LOG_LEVEL and CMDLINE_LOG_FILE. NO_COLOR forces colour off.
func (p *Prefs) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("CMDLINE_WIDTH")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CMDLINE_WIDTH %q: %w", v, err)
		}
		p.Width = n
	}
	if v := getenv("CMDLINE_COLOR"); v != "" {
		p.Color = v
	}
	if getenv("NO_COLOR") != "" {
		p.Color = tui.ModeNever.String()
	}
	if v := getenv("CMDLINE_LOG_LEVEL"); v != "" {
		p.LogLevel = v
	}
	if v := getenv("CMDLINE_LOG_FILE"); v != "" {
		p.LogFile = v
	}
	return p.Validate()
}

// Validate checks field values.
func (p Prefs) Validate() error {
	if p.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", p.Width)
	}
	if _, err := tui.ParseMode(p.Color); err != nil {
		return err
	}
	if p.LogLevel != "" {
		if _, err := log.ParseLevel(p.LogLevel); err != nil {
			return fmt.Errorf("invalid log level %q: %w", p.LogLevel, err)
		}
	}
	return nil
}

// Save writes p as TOML, replacing any existing file atomically.
func Save(path string, p Prefs) error {
	return fileutil.WriteAtomic(path, 0o600, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(p)
	})
}

func findPrefsPath(startDir string) (string, error) {
	dir := filepath.Clean(startDir)
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			ok, err := fileutil.Exists(path)
			if err != nil {
				return "", err
			}
			if ok {
				return path, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}
