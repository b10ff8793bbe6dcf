package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RMahshie/probegrid/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_WritesGrid(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "probe.txt")
	out := &bytes.Buffer{}

	args := []string{
		"--r-min", "0", "--r-max", "0.7", "--r-steps", "2",
		"--z-min", "0", "--z-max", "0.7", "--z-steps", "2",
		"-o", path,
	}
	err := run(args, out)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"0.000000\t0.000000\n0.000000\t0.350000\n0.350000\t0.000000\n0.350000\t0.350000\n",
		string(data))
	assert.Contains(t, out.String(), "Probe grid written")
	assert.Contains(t, out.String(), "lines=4")
}

func TestRun_EnvironmentConfiguresGrid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("R_STEPS", "1")
	t.Setenv("Z_STEPS", "3")
	t.Setenv("Z_MAX", "0.3")
	t.Setenv("OUTPUT_PATH", "grid.txt")

	err := run(nil, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile("grid.txt")
	require.NoError(t, err)
	assert.Equal(t, "0.000000\t0.000000\n0.000000\t0.100000\n0.000000\t0.200000\n", string(data))
}

func TestRun_Help(t *testing.T) {
	out := &bytes.Buffer{}

	err := run([]string{"-h"}, out)

	require.NoError(t, err, "run() should return a nil error when help is requested")
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "--r-steps")
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{
			name:    "unknown flag",
			args:    []string{"--this-is-not-a-valid-flag"},
			wantMsg: "unknown flag: --this-is-not-a-valid-flag",
		},
		{
			name:    "bad number",
			args:    []string{"--r-steps", "many"},
			wantMsg: "invalid argument",
		},
		{
			name:    "positional argument",
			args:    []string{"probe.txt"},
			wantMsg: "unexpected arguments: probe.txt",
		},
		{
			name:    "invalid log level",
			args:    []string{"--log-level", "loud"},
			wantMsg: "invalid log-level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())

			err := run(tt.args, &bytes.Buffer{})
			require.Error(t, err)

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tt.wantMsg)
		})
	}
}

func TestRun_UnwritablePath(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "missing", "probe.txt")
	out := &bytes.Buffer{}

	err := run([]string{"--r-steps", "2", "--z-steps", "2", "-o", path}, out)
	require.Error(t, err)

	var ioErr *grid.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, path, ioErr.Path)

	// Logged by run, so main only sets the exit code
	assert.Equal(t, 1, report(err, out))
	assert.Equal(t, 1, strings.Count(out.String(), ioErr.Error()), out.String())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReport_PrintsEachErrorOnce(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "unknown flag",
			args:     []string{"--this-is-not-a-valid-flag"},
			wantCode: 2,
			wantMsg:  "unknown flag: --this-is-not-a-valid-flag",
		},
		{
			name:     "bad number",
			args:     []string{"--z-steps", "lots"},
			wantCode: 2,
			wantMsg:  "invalid argument",
		},
		{
			name:     "invalid log level",
			args:     []string{"--log-level", "loud"},
			wantCode: 2,
			wantMsg:  "invalid log-level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			out := &bytes.Buffer{}

			code := report(run(tt.args, out), out)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, 1, strings.Count(out.String(), tt.wantMsg), out.String())
		})
	}
}

func TestReport(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		out := &bytes.Buffer{}
		assert.Equal(t, 0, report(nil, out))
		assert.Empty(t, out.String())
	})

	t.Run("plain error", func(t *testing.T) {
		out := &bytes.Buffer{}
		assert.Equal(t, 1, report(errors.New("boom"), out))
		assert.Equal(t, "boom\n", out.String())
	})

	t.Run("already reported", func(t *testing.T) {
		out := &bytes.Buffer{}
		err := &ExitError{Code: 1, Err: errors.New("disk full")}
		assert.Equal(t, 1, report(err, out))
		assert.Empty(t, out.String())
		assert.Equal(t, "disk full", err.Error())
	})
}
