package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T, level LogLevel) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var out, errOut bytes.Buffer
	prevOut, prevErr, prevLevel, prevColor := Stdout, Stderr, CurrentLogLevel, ColorEnabled
	Stdout, Stderr, ColorEnabled = &out, &errOut, false
	SetLogLevel(level)

	t.Cleanup(func() {
		Stdout, Stderr, CurrentLogLevel, ColorEnabled = prevOut, prevErr, prevLevel, prevColor
	})
	return &out, &errOut
}

func TestLogLevels(t *testing.T) {
	out, errOut := captureLogs(t, LevelNormal)

	LogInfo("info %d", 1)
	LogVerbose("hidden")
	LogDebug("hidden")
	LogError("bad %s", "thing")

	assert.Equal(t, "info 1\n", out.String())
	assert.Equal(t, "bad thing\n", errOut.String())
}

func TestLogLevels_Quiet(t *testing.T) {
	out, errOut := captureLogs(t, LevelQuiet)

	LogInfo("hidden")
	LogSuccess("hidden")
	LogWarning("hidden")
	LogError("shown")

	assert.Empty(t, out.String())
	assert.Equal(t, "shown\n", errOut.String())
}

func TestLogLevels_Debug(t *testing.T) {
	out, _ := captureLogs(t, LevelDebug)

	LogVerbose("cmd")
	LogDebug("output")

	assert.Equal(t, "\tcmd\n\toutput\n", out.String())
}

func TestLogLevelFromString(t *testing.T) {
	assert.Equal(t, LevelQuiet, LogLevelFromString("quiet"))
	assert.Equal(t, LevelVerbose, LogLevelFromString("V"))
	assert.Equal(t, LevelDebug, LogLevelFromString("debug"))
	assert.Equal(t, LevelNormal, LogLevelFromString("loud"))
}

func TestColoredText(t *testing.T) {
	prev := ColorEnabled
	t.Cleanup(func() { ColorEnabled = prev })

	ColorEnabled = false
	assert.Equal(t, "plain", Success("plain"))

	ColorEnabled = true
	assert.Equal(t, GreenColor+"plain"+ResetColor, Success("plain"))
}
