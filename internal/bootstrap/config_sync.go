package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/CloverPit_Go/internal/item"
	"github.com/osse101/CloverPit_Go/internal/repository"
)

// SyncItems loads, validates, and syncs the shop catalog file to storage.
// Hash-based change detection skips the sync if the file is unchanged.
func SyncItems(ctx context.Context, catalog repository.Catalog, path string) (*item.SyncResult, error) {
	slog.Info(LogMsgSyncingItems, "path", path)
	loader := item.NewLoader()

	itemConfig, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadItems, err)
	}

	if err := loader.Validate(itemConfig); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidItems, err)
	}

	result, err := loader.SyncToDatabase(ctx, itemConfig, catalog, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedSyncItems, err)
	}

	if result.Changed() {
		slog.Info(LogMsgItemsSynced,
			"inserted", result.ItemsInserted,
			"updated", result.ItemsUpdated,
			"skipped", result.ItemsSkipped)
	} else {
		slog.Info(LogMsgItemsUnchanged)
	}

	return result, nil
}
