package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	SetupWithOutput(Development, &buf)

	log.Debug("debug line")

	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "debug line")
}

func TestSetupProductionUsesJSON(t *testing.T) {
	var buf bytes.Buffer
	SetupWithOutput(Production, &buf)

	log.Debug("hidden")
	log.WithField("review_id", "abc").Info("visible")

	assert.NotContains(t, buf.String(), "hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "abc", entry["review_id"])
}

func TestSetupUnknownEnvFallsBackToDevelopment(t *testing.T) {
	var buf bytes.Buffer
	SetupWithOutput("qa", &buf)

	assert.Equal(t, log.DebugLevel, log.GetLevel())
}
