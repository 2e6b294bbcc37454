package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/heleta-pos/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendMemory, cfg.DB.Backend)
	assert.Equal(t, 5*time.Second, cfg.Sales.LockTimeout)
	assert.Equal(t, 10, cfg.Dashboard.LowStockThreshold)
	assert.Equal(t, "America/La_Paz", cfg.App.Timezone)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/pos")
	t.Setenv("SALES_LOCK_TIMEOUT", "750ms")
	t.Setenv("DASHBOARD_CACHE_TTL", "2000")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendPostgres, cfg.DB.Backend)
	assert.Equal(t, "postgres://u:p@db:5432/pos", cfg.DB.ConnectionString())
	assert.Equal(t, 750*time.Millisecond, cfg.Sales.LockTimeout)
	assert.Equal(t, 2*time.Second, cfg.Dashboard.CacheTTL)
	assert.Equal(t, 3, cfg.Dashboard.LowStockThreshold)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_BackendInvalido(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestAppConfig_LocationInvalidaUsaUTC(t *testing.T) {
	app := config.AppConfig{Timezone: "No/Existe"}
	assert.Equal(t, time.UTC, app.Location())
}
