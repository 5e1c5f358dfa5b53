package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestCredentialsFromDotEnv(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "development")
	unsetEnv(t, "ADMIN_EMAIL", "ADMIN_PASSWORD")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("ADMIN_EMAIL=owner@vinayakfood.com\nADMIN_PASSWORD=golgappa-123\n"), 0o600))
	chdir(t, dir)

	loadDotEnv()
	opts, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, "owner@vinayakfood.com", opts.email)
	assert.Equal(t, "golgappa-123", opts.password)
	assert.False(t, opts.withDishes)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "owner@vinayakfood.com")
	t.Setenv("ADMIN_PASSWORD", "golgappa-123")

	opts, err := parseFlags([]string{"-email", "manager@vinayakfood.com", "-sample-dishes"})
	require.NoError(t, err)
	assert.Equal(t, "manager@vinayakfood.com", opts.email)
	assert.Equal(t, "golgappa-123", opts.password)
	assert.True(t, opts.withDishes)
}
