package clog

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Infof_writes_level_prefixed_line(t *testing.T) {
	assert := assert.New(t)
	defer SetOutput(os.Stderr)
	defer SetQuiet(false)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetQuiet(false)

	Infof("hello %s", "world")

	assert.True(strings.Contains(buf.String(), "INFO  hello world"))
}

func Test_SetQuiet_suppresses_debug_and_info_but_not_warn(t *testing.T) {
	assert := assert.New(t)
	defer SetOutput(os.Stderr)
	defer SetQuiet(false)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetQuiet(true)

	Debugf("should not appear")
	Infof("should not appear either")
	Warnf("should appear")

	out := buf.String()
	assert.False(strings.Contains(out, "should not appear"))
	assert.True(strings.Contains(out, "WARN  should appear"))
}
