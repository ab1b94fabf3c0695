package headache

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger("sim", false, &buf)

	log.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	log.Infof("contacts: %d", 3)
	assert.Contains(t, buf.String(), "[sim] INFO: contacts: 3")

	log.SetDebug(true)
	assert.True(t, log.DebugEnabled())
	log.Debugf("shown")
	assert.Contains(t, buf.String(), "[sim] DEBUG: shown")

	log.Errorf("bad")
	assert.Contains(t, buf.String(), "[sim] ERROR: bad")

	plain := NewWriterLogger("", false, &buf)
	plain.Warnf("careful")
	assert.Contains(t, buf.String(), " WARN: careful")
}

func TestApp_Logger(t *testing.T) {
	var nilApp *App
	require.NotNil(t, nilApp.Logger())

	app := NewAppBuilder().Build()
	_, isNop := app.Logger().(*nopLogger)
	assert.True(t, isNop)

	var buf bytes.Buffer
	logger := NewWriterLogger("x", true, &buf)
	app = NewAppBuilder().UseModule(LoggingModule{Logger: logger}).Build()
	assert.Same(t, logger, app.Logger())

	app.Commands().Logger().Infof("hello")
	assert.Contains(t, buf.String(), "[x] INFO: hello")
}
