// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yeetrun/cmdline/pkg/prefs"
)

func TestNewDiscard(t *testing.T) {
	var buf bytes.Buffer
	for _, cfg := range []Config{{}, {Out: &buf}, {Level: "debug"}} {
		l, err := New(cfg)
		if err != nil {
			t.Fatalf("New(%+v) error = %v", cfg, err)
		}
		l.Error("should not appear")
		if err := l.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}
	if buf.Len() != 0 {
		t.Errorf("discarding logger wrote %q", buf.String())
	}
}

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "warn", Out: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l.Info("quiet")
	l.Warn("loud", "command", "commit")
	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info line logged at warn level: %q", out)
	}
	if !strings.Contains(out, "loud") || !strings.Contains(out, "command=commit") {
		t.Errorf("warn line missing: %q", out)
	}

	if _, err := New(Config{Level: "chatty", Out: &buf}); err == nil {
		t.Errorf("New(level chatty) succeeded, want error")
	}
}

func TestFileOutputIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmdline.log")
	l, err := FromPrefs(prefs.Prefs{LogLevel: "debug", LogFile: path}, nil)
	if err != nil {
		t.Fatalf("FromPrefs() error = %v", err)
	}
	l.Debug("bound", "param", "path")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(b), &entry); err != nil {
		t.Fatalf("log line %q is not JSON: %v", b, err)
	}
	if entry["msg"] != "bound" || entry["param"] != "path" {
		t.Errorf("entry = %v", entry)
	}
}
