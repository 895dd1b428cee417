package logger

import (
	"bytes"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestInit_Text(t *testing.T) {
	var buf bytes.Buffer
	Init(&Config{Level: charmlog.InfoLevel, Output: &buf})

	Debug("hidden")
	Info("wrote", "file", "config_derive.go")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "derive-gen")
	assert.Contains(t, buf.String(), "file=config_derive.go")
}

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	Init(&Config{Level: charmlog.DebugLevel, Output: &buf, JSON: true})

	With("record", "Config").Warn("skipped")

	assert.Contains(t, buf.String(), `"msg":"skipped"`)
	assert.Contains(t, buf.String(), `"record":"Config"`)
}
