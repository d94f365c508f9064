package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZerologLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")

	out := buf.String()
	assert.True(t, strings.Contains(out, `"component":"test"`))
	assert.True(t, strings.Contains(out, "info test"))
}
