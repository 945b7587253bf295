package logging

import "testing"

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		if logger := New(level, "production"); logger == nil {
			t.Fatalf("expected logger for level %q", level)
		}
	}
}

func TestDevelopmentHandler(t *testing.T) {
	logger := New("debug", "development")
	logger.Debug("dev logger works", "key", "value")
}

func TestNamed(t *testing.T) {
	logger := Default().Named("backend")
	if logger == nil {
		t.Fatal("expected named logger")
	}
	logger.Info("named logger works")
}
