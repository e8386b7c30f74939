package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*cobra.Command, *flagOverrides) {
	t.Helper()
	f := &flagOverrides{}
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, f
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("SYMBIONT_HTTP_ADDR", ":7000")
	t.Setenv("SYMBIONT_DB_PATH", "/tmp/env.db")

	cmd, f := parse(t, "--addr", ":8080", "--db", "none", "-v")
	cfg, err := f.load(cmd)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "", cfg.CachePath())
	assert.True(t, cfg.Verbose)
}

func TestEnvironmentUsedWithoutFlags(t *testing.T) {
	t.Setenv("SYMBIONT_HTTP_ADDR", ":7000")
	t.Setenv("SYMBIONT_DB_PATH", "/tmp/env.db")

	cmd, f := parse(t)
	cfg, err := f.load(cmd)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, "/tmp/env.db", cfg.CachePath())
	assert.False(t, cfg.Verbose)
}

func TestInvalidEnvironmentFails(t *testing.T) {
	t.Setenv("SYMBIONT_INITIAL_YIELD", "75")

	cmd, f := parse(t)
	_, err := f.load(cmd)
	assert.Error(t, err)
}
