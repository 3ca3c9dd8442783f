package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorToggle(t *testing.T) {
	SetColorEnabled(false)
	assert.Equal(t, "hi", Bold("hi"))
	assert.Equal(t, "✓", OKTag())

	SetColorEnabled(true)
	defer SetColorEnabled(false)
	assert.Equal(t, "\033[1mhi\033[0m", Bold("hi"))
	assert.Equal(t, "\033[33m⚠\033[0m", WarnTag())
}

func TestWarnf(t *testing.T) {
	SetColorEnabled(false)
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(os.Stderr)

	Warnf("%d records dropped", 3)
	assert.Equal(t, "Warning: 3 records dropped\n", buf.String())
}
