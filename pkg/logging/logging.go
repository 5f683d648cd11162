// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging builds the structured logger used for dispatch
// diagnostics.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/yeetrun/cmdline/pkg/prefs"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	// Level is debug, info, warn or error. Empty disables logging.
	Level string
	// Out receives log lines. Nil means no terminal output.
	Out io.Writer
	// File, when set, also receives log lines as JSON with size-based
	// rotation.
	File       string
	MaxSizeMB  int
	MaxBackups int
	Prefix     string
}

// Logger is a log.Logger that owns its file output.
type Logger struct {
	*log.Logger
	file io.Closer
}

// New returns a logger for cfg. A config with neither Out nor File, or
// with an empty level, yields a logger that discards everything.
func New(cfg Config) (*Logger, error) {
	if strings.TrimSpace(cfg.Level) == "" || (cfg.Out == nil && cfg.File == "") {
		return &Logger{Logger: log.New(io.Discard)}, nil
	}
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	l := &Logger{}
	var (
		w         io.Writer
		formatter = log.TextFormatter
	)
	switch {
	case cfg.File != "" && cfg.Out != nil:
		lj := newRotator(cfg)
		l.file = lj
		w = io.MultiWriter(cfg.Out, lj)
		formatter = log.LogfmtFormatter
	case cfg.File != "":
		lj := newRotator(cfg)
		l.file = lj
		w = lj
		formatter = log.JSONFormatter
	default:
		w = cfg.Out
	}

	l.Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           level,
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	return l, nil
}

// FromPrefs returns a logger configured by p, writing to out.
func FromPrefs(p prefs.Prefs, out io.Writer) (*Logger, error) {
	return New(Config{Level: p.LogLevel, File: p.LogFile, Out: out})
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func newRotator(cfg Config) *lumberjack.Logger {
	size := cfg.MaxSizeMB
	if size <= 0 {
		size = 16
	}
	backups := cfg.MaxBackups
	if backups <= 0 {
		backups = 3
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    size,
		MaxBackups: backups,
	}
}
