// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/platform/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/books")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "/keys/private.pem")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")
}

/*
TestLoad_Defaults checks default values when only required keys are set.
*/
func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.LoadFiles(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.False(t, cfg.AtomicInsert)
	assert.Equal(t, 4, cfg.AuthorLinkConcurrency)
	assert.Empty(t, cfg.AllowedOrigins())
}

/*
TestLoad_MissingRequired fails fast without DATABASE_URL.
*/
func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "/keys/private.pem")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))

	_, err := config.LoadFiles()
	assert.Error(t, err)
}

/*
TestLoad_DotEnvFile reads values from a dotenv file without overriding the process env.
*/
func TestLoad_DotEnvFile(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9000")

	file := filepath.Join(t.TempDir(), "test.env")
	content := "SERVER_PORT=7000\nCATALOG_ATOMIC_INSERT=true\nEXTRA_ORIGINS=https://a.example, https://b.example\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("CATALOG_ATOMIC_INSERT")
		_ = os.Unsetenv("EXTRA_ORIGINS")
	})

	cfg, err := config.LoadFiles(file)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.True(t, cfg.AtomicInsert)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

/*
TestLoad_InvalidConcurrency rejects a zero worker bound.
*/
func TestLoad_InvalidConcurrency(t *testing.T) {
	setRequired(t)
	t.Setenv("AUTHOR_LINK_CONCURRENCY", "0")

	_, err := config.LoadFiles()
	assert.Error(t, err)
}
