package repository

import (
	"context"

	"github.com/osse101/CloverPit_Go/internal/domain"
)

// Catalog defines the interface for shop catalog maintenance
type Catalog interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
	InsertItem(ctx context.Context, item *domain.Item) (int, error)
	UpdateItem(ctx context.Context, itemID int, item *domain.Item) error

	GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error)
	UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error
}
