package cli

import (
	"context"
	"errors"

	appcompras "github.com/jhoicas/compras-api/internal/application/compras"
	"github.com/jhoicas/compras-api/internal/domain/compras"
)

var errOffline = errors.New("sin persistencia: use --save")

// offlineService permite usar el editor sin abrir la persistencia.
type offlineService struct{}

func (offlineService) NextSequenceID(context.Context) (int, error) {
	return appcompras.DefaultSequenceID, nil
}

func (offlineService) Save(context.Context, *compras.PurchaseInvoice) (*appcompras.SaveResult, error) {
	return nil, errOffline
}

func (offlineService) Get(context.Context, string) (*compras.PurchaseInvoice, error) {
	return nil, errOffline
}
