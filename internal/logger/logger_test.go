package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileLoggerWriteJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dumps")
	l := NewFileLogger(dir)

	if err := l.WriteJSON("request.json", []byte(`{"prompt":"hi"}`)); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "request.json"))
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if string(got) != `{"prompt":"hi"}` {
		t.Errorf("dump = %q", got)
	}
}

func TestNopLogger(t *testing.T) {
	l := Nop()
	if err := l.WriteJSON("x.json", []byte("{}")); err != nil {
		t.Errorf("Nop WriteJSON() error = %v", err)
	}
	l.Debug("ignored", "k", "v")
	l.Error("ignored")
}

func TestOpenLogFile(t *testing.T) {
	if _, err := openLogFile(""); err == nil {
		t.Error("openLogFile(\"\") should fail so output is discarded")
	}

	dir := filepath.Join(t.TempDir(), "nested")
	f, err := openLogFile(dir)
	if err != nil {
		t.Fatalf("openLogFile() error = %v", err)
	}
	defer f.Close()
	if _, err := os.Stat(filepath.Join(dir, "axamine.log")); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}
