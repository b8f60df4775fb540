package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T, name string) (*Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	return For(name), buf
}

func TestLevelAndPrefix(t *testing.T) {
	SetGlobalDebug(false)

	l, buf := newTestLogger(t, "prefix_test")
	l.Infof("hello %s", "world")
	l.Errorf("boom")

	out := buf.String()
	if !strings.Contains(out, "INFO [prefix_test>] hello world") {
		t.Fatalf("unexpected info line: %q", out)
	}
	if !strings.Contains(out, "ERROR [prefix_test>] boom") {
		t.Fatalf("unexpected error line: %q", out)
	}
}

func TestForIsMemoized(t *testing.T) {
	if For("same") != For("same") {
		t.Fatal("expected the same logger instance")
	}
	if For("").Name() != "apodview" {
		t.Fatalf("empty name should map to apodview, got %q", For("").Name())
	}
}

func TestDebugPerComponent(t *testing.T) {
	SetGlobalDebug(false)

	const name = "debug_component"
	DisableDebugFor(name)
	l, buf := newTestLogger(t, name)

	l.Debugf("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatal("debug line printed while disabled")
	}

	EnableDebugFor(name)
	defer DisableDebugFor(name)
	l.Debugf("visible")
	if !strings.Contains(buf.String(), "DEBUG [debug_component>] visible") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}

	if DebugEnabledFor("other_component") {
		t.Fatal("debug leaked to another component")
	}
}

func TestDebugGlobal(t *testing.T) {
	l, buf := newTestLogger(t, "debug_global")

	SetGlobalDebug(true)
	defer SetGlobalDebug(false)

	l.Debugf("everywhere")
	if !strings.Contains(buf.String(), "everywhere") {
		t.Fatalf("expected global debug line, got %q", buf.String())
	}
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "apodview.log")
	if err := SetupFile(FileOptions{Path: path, MaxSizeMB: 1}); err != nil {
		t.Fatalf("SetupFile: %v", err)
	}

	For("file_test").Warnf("written to disk")

	if err := CloseFile(); err != nil {
		t.Fatalf("CloseFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "WARN [file_test>] written to disk") {
		t.Fatalf("log file content = %q", data)
	}
}

func TestSetupFileEmptyPathIsNoop(t *testing.T) {
	if err := SetupFile(FileOptions{}); err != nil {
		t.Fatalf("SetupFile: %v", err)
	}
	if err := CloseFile(); err != nil {
		t.Fatalf("CloseFile: %v", err)
	}
}
