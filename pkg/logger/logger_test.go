package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevelsAndFormat(t *testing.T) {
	l := New("debug", "production")
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	l = New("nonsense", "development")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestWithFieldsWritesJSON(t *testing.T) {
	l := New("info", "production")
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.WithFields(map[string]interface{}{"seq": 4}).WithField("match_id", "m1").Warn("snapshot write failed")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "m1", line["match_id"])
	assert.Equal(t, 4.0, line["seq"])
	assert.Equal(t, "warning", line["level"])
}
