package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/assettrack")
	t.Setenv("API_ANON_KEY", "anon")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("REPORT_STORAGE", "")
	t.Setenv("SEED_DEMO", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "none", cfg.Archive.Kind)
	assert.Equal(t, "reports", cfg.Archive.Dir)
	assert.False(t, cfg.SeedDemo)
	assert.True(t, cfg.Archive.S3.UseSSL)
}

func TestLoadArchiveSettings(t *testing.T) {
	setRequired(t)
	t.Setenv("REPORT_STORAGE", "S3")
	t.Setenv("S3_ENDPOINT", "minio:9000")
	t.Setenv("S3_BUCKET", "informes")
	t.Setenv("S3_USE_SSL", "false")
	t.Setenv("SEED_DEMO", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3", cfg.Archive.Kind)
	assert.Equal(t, "minio:9000", cfg.Archive.S3.Endpoint)
	assert.Equal(t, "informes", cfg.Archive.S3.Bucket)
	assert.False(t, cfg.Archive.S3.UseSSL)
	assert.True(t, cfg.SeedDemo)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("API_ANON_KEY", "anon")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingEnv)
	assert.Contains(t, err.Error(), "DB_DSN")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.NotContains(t, err.Error(), "API_ANON_KEY")
}

func TestDemoCatalogueHasFixtureAsset(t *testing.T) {
	var found bool
	for _, r := range demoCatalogue() {
		for _, s := range r.sites {
			for _, a := range s.assets {
				if a.Code == "M-3209" {
					found = true
					assert.Equal(t, "MAD", s.site.Code)
				}
			}
		}
	}
	assert.True(t, found)
}
