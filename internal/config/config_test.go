package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  debug: false
storage:
  prefix: "test_"
  compression: zstd
chat:
  reply_delay: 250ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.App.Debug)
	assert.Equal(t, "test_", cfg.Storage.Prefix)
	assert.Equal(t, "zstd", cfg.Storage.Compression)
	assert.Equal(t, "cbor", cfg.Storage.Codec, "unset keys keep their default")
	assert.Equal(t, 250*time.Millisecond, cfg.Chat.ReplyDelay)
	assert.Equal(t, 6, cfg.Auth.MinPassword)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tcases := []struct {
		name string
		body string
	}{
		{name: "empty prefix", body: "storage:\n  prefix: \"\"\n"},
		{name: "unknown codec", body: "storage:\n  codec: xml\n"},
		{name: "unknown compression", body: "storage:\n  compression: gzip\n"},
		{name: "bad bcrypt cost", body: "auth:\n  bcrypt_cost: 2\n"},
		{name: "zero delay", body: "chat:\n  reply_delay: 0s\n"},
		{name: "malformed yaml", body: "app: [\n"},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := LoadOrDefault(missing, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = LoadOrDefault(missing, true)
	assert.Error(t, err, "an explicitly requested file must exist")
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.Equal(t, "roomielink_", Default().Storage.Prefix)
}
