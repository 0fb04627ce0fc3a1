package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"ruido", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := New(tt.in, false).GetLevel(); got != tt.want {
			t.Errorf("level %q: expected %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestNew_ConsoleKeepsLevel(t *testing.T) {
	if got := New("error", true).GetLevel(); got != zerolog.ErrorLevel {
		t.Errorf("expected error level with console output, got %s", got)
	}
}
