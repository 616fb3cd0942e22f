package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_VerboseGating(t *testing.T) {
	var buf bytes.Buffer
	verbose := false
	log := NewWithWriter("nav", func() bool { return verbose }, &buf)

	log.Debug("hidden %d", 1)
	log.Info("hidden too")
	assert.Empty(t, buf.String())

	log.Warn("shown %s", "always")
	assert.Contains(t, buf.String(), "WARN [nav] shown always")

	buf.Reset()
	verbose = true
	log.Debug("now visible")
	assert.Contains(t, buf.String(), "DEBUG [nav] now visible")
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("", nil, &buf)

	log.WarnWithFields("counter failed", []Field{F("slug", "hello"), F("attempt", 2)})
	line := buf.String()
	assert.Contains(t, line, "[main] counter failed [slug=hello attempt=2]")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestLogger_LiteralPercent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("x", nil, &buf)
	log.Error("100% done")
	assert.Contains(t, buf.String(), "100% done")
}

func TestLogger_WithComponentSharesWriter(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter("base", nil, &buf)
	base.WithComponent("child").Error("boom")
	assert.Contains(t, buf.String(), "[child] boom")
}
