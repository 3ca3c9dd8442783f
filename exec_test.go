package btrace

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The success paths of the true operations replace the test process and
// cannot be exercised here; the failure discipline can.

func TestSysExecvpeNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	err := sysExecvpe("btrace-no-such-program", []string{"x"}, nil)
	assert.Equal(t, unix.ENOENT, err)
}

func TestSysExecvpeSlashBypassesSearch(t *testing.T) {
	// A name with a slash is used directly; no $PATH entry is consulted.
	t.Setenv("PATH", "")
	err := sysExecvpe(filepath.Join(t.TempDir(), "missing"), []string{"x"}, nil)
	assert.Equal(t, unix.ENOENT, err)
}

func TestSysExecvpeReportsDeferredEACCES(t *testing.T) {
	dir := t.TempDir()
	prog := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(prog, []byte("#!/bin/sh\n"), 0o644)) // not executable
	t.Setenv("PATH", dir+":"+t.TempDir())

	err := sysExecvpe("tool", []string{"tool"}, nil)
	assert.Equal(t, unix.EACCES, err)
}

func TestSysExecveMissingPath(t *testing.T) {
	err := sysExecve(filepath.Join(t.TempDir(), "missing"), []string{"x"}, nil)
	assert.Equal(t, unix.ENOENT, err)
}
