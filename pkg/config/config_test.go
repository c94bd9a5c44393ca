package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compras-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, config.StorePostgres, cfg.Compras.Store)
	assert.Equal(t, 100, cfg.Compras.DefaultSequenceID)
	assert.Equal(t, "PATCH", cfg.DocAPI.UpdateMethod)
	assert.Equal(t, 15*time.Second, cfg.DocAPI.Timeout)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("COMPRAS_STORE", "REST")
	t.Setenv("DOCAPI_BASE_URL", "https://api.tienda.co/")
	t.Setenv("DOCAPI_UPDATE_METHOD", "put")
	t.Setenv("DOCAPI_TIMEOUT", "3s")
	t.Setenv("COMPRAS_DEFAULT_SEQUENCE_ID", "500")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, config.StoreREST, cfg.Compras.Store)
	assert.Equal(t, "https://api.tienda.co", cfg.DocAPI.BaseURL)
	assert.Equal(t, "PUT", cfg.DocAPI.UpdateMethod)
	assert.Equal(t, 3*time.Second, cfg.DocAPI.Timeout)
	assert.Equal(t, 500, cfg.Compras.DefaultSequenceID)
}

func TestLoad_MetodoInvalido(t *testing.T) {
	t.Setenv("DOCAPI_UPDATE_METHOD", "POST")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w", DBName: "tienda", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw@db:5432/tienda?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgres://otra"
	assert.Equal(t, "postgres://otra", db.ConnectionString())
}
