package logx

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = newLogger(&buf)
	t.Cleanup(func() { baseLogger = saved })
	return &buf
}

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	buf := capture(t)
	SetLogLevel("info")

	msg := "rendered panel soc (100.0% of rows)"
	Infof(msg)

	out := buf.String()
	assert.Contains(t, out, "(100.0% of rows)")
	assert.NotContains(t, out, "MISSING")
}

func TestSetLogLevel_FiltersDebug(t *testing.T) {
	buf := capture(t)

	SetLogLevel("info")
	Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetLogLevel(" DEBUG ")
	Debugf("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
}

func TestSetLogLevel_IgnoresUnknown(t *testing.T) {
	buf := capture(t)
	SetLogLevel("warn")
	SetLogLevel("loud")
	Infof("still filtered")
	assert.Empty(t, buf.String())
	Warnf("warned")
	assert.Contains(t, buf.String(), "warned")
}

func TestValidLevel(t *testing.T) {
	for _, s := range []string{"debug", "Info", "warning", "error"} {
		assert.True(t, ValidLevel(s), s)
	}
	assert.False(t, ValidLevel("trace"))
}

func TestTimeTrack(t *testing.T) {
	buf := capture(t)
	SetLogLevel("debug")
	TimeTrack(time.Now(), "load")
	assert.Contains(t, buf.String(), "load took")
}
