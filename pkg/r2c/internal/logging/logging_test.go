package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.want, ParseLevel(tt.raw))
		})
	}
}

func TestSessionIsStable(t *testing.T) {
	require.NotEmpty(t, Session())
	require.Equal(t, Session(), Session())
}

func TestDiscardDropsErrors(t *testing.T) {
	l := Discard()
	require.False(t, l.Enabled(context.Background(), slog.LevelError))
}
