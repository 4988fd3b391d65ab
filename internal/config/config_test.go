package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestFromFile_OverlaysYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mstgraphd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \"127.0.0.1:5000\"\npool_size: 8\n"), 0o644))

	cfg, err := FromFile(Default(), path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5000", cfg.ListenAddr)
	assert.Equal(t, 8, cfg.PoolSize)
	assert.Equal(t, CorePipeline, cfg.Core)
}

func TestFromFile_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := FromFile(Default(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MSTGRAPHD_CORE", "lf")
	t.Setenv("MSTGRAPHD_POOL_SIZE", "16")

	cfg := envOverrides(Default())
	assert.Equal(t, CoreLF, cfg.Core)
	assert.Equal(t, 16, cfg.PoolSize)
}

func TestBindFlags_OverridesDefaults(t *testing.T) {
	cfg := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs, &cfg)
	require.NoError(t, fs.Parse([]string{"--listen", "127.0.0.1:9999", "--core", "lf"}))

	assert.Equal(t, "127.0.0.1:9999", cfg.ListenAddr)
	assert.Equal(t, CoreLF, cfg.Core)
}

func TestValidate_RejectsUnknownCore(t *testing.T) {
	cfg := Default()
	cfg.Core = "bogus"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsZeroPoolSizeForLF(t *testing.T) {
	cfg := Default()
	cfg.Core = CoreLF
	cfg.PoolSize = 0
	assert.Error(t, cfg.Validate())
}
