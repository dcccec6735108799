package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.True(t, cfg.App.IsDev())
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, uint64(42), cfg.Generate.Seed)
	assert.Equal(t, 50000, cfg.Generate.Orders)
	assert.Equal(t, 15000, cfg.Generate.Customers)
	assert.Equal(t, 500, cfg.Generate.Products)
	assert.Equal(t, "Management_Report.xlsx", cfg.Report.Path)
	assert.False(t, cfg.Export.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("QUICKCART_DATA_DIR", "/tmp/quickcart")
	t.Setenv("QUICKCART_GENERATE_SEED", "7")
	t.Setenv("QUICKCART_GENERATE_ORDERS", "20")
	t.Setenv("QUICKCART_EXPORT_SQLITE_PATH", "out.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/quickcart", cfg.Data.Dir)
	assert.Equal(t, uint64(7), cfg.Generate.Seed)
	assert.Equal(t, 20, cfg.Generate.Orders)
	assert.True(t, cfg.Export.Enabled())
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("QUICKCART_GENERATE_ORDERS", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}
