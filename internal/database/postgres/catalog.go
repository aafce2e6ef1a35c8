package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CloverPit_Go/internal/domain"
)

// CatalogRepository maintains the items table for catalog sync
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, SQLListItems)
	if err != nil {
		return nil, wrapErr("list items", err)
	}
	items, err := collectItems(rows)
	if err != nil {
		return nil, wrapErr("scan items", err)
	}
	return items, nil
}

func (r *CatalogRepository) InsertItem(ctx context.Context, item *domain.Item) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, SQLInsertItem,
		item.Name, item.Description, item.Rarity, item.Price, string(item.EffectType), item.EffectValue,
	).Scan(&id)
	if err != nil {
		return 0, wrapErr(fmt.Sprintf("insert item %q", item.Name), err)
	}
	return id, nil
}

func (r *CatalogRepository) UpdateItem(ctx context.Context, itemID int, item *domain.Item) error {
	tag, err := r.db.Exec(ctx, SQLUpdateItem,
		itemID, item.Name, item.Description, item.Rarity, item.Price, string(item.EffectType), item.EffectValue,
	)
	if err != nil {
		return wrapErr(fmt.Sprintf("update item %q", item.Name), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", domain.ErrItemNotFound, itemID)
	}
	return nil
}

// GetSyncMetadata returns an error wrapping pgx.ErrNoRows before the first sync
func (r *CatalogRepository) GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error) {
	var m domain.SyncMetadata
	err := r.db.QueryRow(ctx, SQLGetSyncMetadata, configName).Scan(&m.ConfigName, &m.LastSyncTime, &m.FileHash, &m.FileModTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("no sync metadata for %s: %w", configName, err)
		}
		return nil, wrapErr("get sync metadata", err)
	}
	return &m, nil
}

func (r *CatalogRepository) UpsertSyncMetadata(ctx context.Context, m *domain.SyncMetadata) error {
	if _, err := r.db.Exec(ctx, SQLUpsertSyncMetadata, m.ConfigName, m.LastSyncTime, m.FileHash, m.FileModTime); err != nil {
		return wrapErr("upsert sync metadata", err)
	}
	return nil
}
