package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerJSON(t *testing.T) {
	t.Setenv("ROSTERLINE_ENV", "")
	t.Setenv("APP_ENV", "")
	var buf bytes.Buffer
	l := New("engine", Options{Output: &buf})
	l.Infow("roster generated", map[string]any{"year": 2025})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, "roster generated", entry["message"])
	assert.EqualValues(t, 2025, entry["year"])
}

func TestZerologLoggerLevel(t *testing.T) {
	t.Setenv("ROSTERLINE_ENV", "")
	t.Setenv("APP_ENV", "")
	var buf bytes.Buffer
	l := New("test", Options{Output: &buf, Level: "warn"})
	l.Debugf("debug %d", 1)
	l.Infof("info %s", "x")
	assert.Zero(t, buf.Len())
	l.Warnf("warn")
	l.Errorf("error")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(" error "))
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debugf("x")
	l.Infof("x")
	l.Warnf("x")
	l.Errorf("x")
	l.Infow("x", nil)
}
