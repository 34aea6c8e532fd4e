package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_Version(t *testing.T) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, stderr)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "starfolk version")
}

func TestRun_UnknownCommand(t *testing.T) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"warp"}, stdout, stderr)
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error:")
}
