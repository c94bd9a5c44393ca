package store_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compras-api/internal/infrastructure/docapi"
	"github.com/jhoicas/compras-api/internal/infrastructure/store"
	"github.com/jhoicas/compras-api/pkg/config"
	"github.com/jhoicas/compras-api/pkg/logger"
)

func TestOpen_REST(t *testing.T) {
	cfg := &config.Config{
		DocAPI:  config.DocAPIConfig{BaseURL: "http://localhost:1", Database: "tienda"},
		Compras: config.ComprasConfig{Store: config.StoreREST},
	}
	s, err := store.Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &docapi.Client{}, s.Purchases)
	assert.Nil(t, s.Pool)
	assert.Nil(t, s.Tx)
	assert.Nil(t, s.Collection("tienda"))
	assert.NotNil(t, s.UseCase(zerolog.Nop(), 0))
}

func TestOpen_Desconocido(t *testing.T) {
	_, err := store.Open(context.Background(), &config.Config{Compras: config.ComprasConfig{Store: "mongo"}}, logger.Nop())
	assert.Error(t, err)
}
