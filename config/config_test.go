package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFileAndEnvOverrides(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "catalogapi.yml")
	yml := `
web:
  host: 127.0.0.1
  port: 9000
database:
  namespace: testns
`
	require.NoError(t, os.WriteFile(cfile, []byte(yml), 0o644))

	t.Setenv("CATALOG_WEB_PORT", "9100")
	t.Setenv("CATALOG_WEB_SECRET", "env-secret")
	t.Setenv("CATALOG_SYSTEM_DEBUG", "false")

	cfg := LoadConfig(cfile)

	// file values
	require.Equal(t, "127.0.0.1", cfg.Web.Host)
	require.Equal(t, "testns", cfg.Database.Namespace)

	// environment wins over the file
	require.Equal(t, 9100, cfg.Web.Port)
	require.Equal(t, "env-secret", cfg.Web.Secret)
	require.False(t, cfg.System.Debug)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.Equal(t, "CatalogApi", cfg.System.Appid)
	require.Equal(t, "/static", cfg.Web.ImagePrefix)
}
