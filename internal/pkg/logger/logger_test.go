package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DebugLevel},
		{" INFO ", InfoLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"disabled", DisabledLevel},
		{"", WarnLevel},
		{"verbose", WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in, WarnLevel))
		})
	}
}

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { Configure(Config{Level: WarnLevel, Pretty: true}) })

	var buf bytes.Buffer
	lgr := Configure(Config{Level: InfoLevel, Output: &buf})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	lgr.Debug().Msg("hidden")
	lgr.Info().Str("studentId", "U00DEMO01").Msg("visible")
	Error().Err(errors.New("boom")).Msg("package error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"studentId":"U00DEMO01"`)
	assert.Contains(t, out, `"message":"package error"`)
	assert.Contains(t, out, `"error":"boom"`)

	buf.Reset()
	lgr = Configure(Config{Level: DisabledLevel, Output: &buf})
	lgr.Error().Msg("silenced")
	Error().Msg("silenced too")
	assert.Empty(t, buf.String())
}
