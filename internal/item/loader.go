// Package item loads the shop catalog from JSON and syncs it into the catalog store.
package item

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/osse101/CloverPit_Go/internal/domain"
	"github.com/osse101/CloverPit_Go/internal/logger"
	"github.com/osse101/CloverPit_Go/internal/repository"
	"github.com/osse101/CloverPit_Go/internal/validation"
)

// Sentinel errors for item loader
var (
	ErrDuplicateName = errors.New("duplicate item name")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config represents the JSON configuration for the shop
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Items []Def `json:"items"`
}

// Def represents a single item definition in the JSON
type Def struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Rarity      string            `json:"rarity"`
	Price       int               `json:"price"`
	EffectType  domain.EffectType `json:"effect_type"`
	EffectValue float64           `json:"effect_value"`
}

func (d Def) toItem() *domain.Item {
	return &domain.Item{
		Name:        d.Name,
		Description: d.Description,
		Rarity:      d.Rarity,
		Price:       d.Price,
		EffectType:  d.EffectType,
		EffectValue: d.EffectValue,
	}
}

// Loader handles loading and validating the shop catalog
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	SyncToDatabase(ctx context.Context, config *Config, repo repository.Catalog, configPath string) (*SyncResult, error)
}

// SyncResult contains the result of syncing items to the database
type SyncResult struct {
	ItemsInserted int
	ItemsUpdated  int
	ItemsSkipped  int
}

// Changed reports whether the sync touched any row
func (r *SyncResult) Changed() bool {
	return r.ItemsInserted > 0 || r.ItemsUpdated > 0
}

type itemLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &itemLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads and parses an items JSON file
func (l *itemLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, ItemsSchemaPath); err != nil {
		return nil, fmt.Errorf(ErrMsgSchemaFailed, path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// Validate checks rules the schema cannot express
func (l *itemLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}
	if len(config.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItemsDefined)
	}

	names := make(map[string]bool, len(config.Items))
	for i := range config.Items {
		if err := validateDef(i, &config.Items[i], names); err != nil {
			return err
		}
	}
	return nil
}

func validateDef(index int, def *Def, names map[string]bool) error {
	if def.Name == "" {
		return fmt.Errorf(ErrFmtItemAtIndexEmpty, ErrInvalidConfig, index)
	}
	if names[def.Name] {
		return fmt.Errorf("%w: '%s'", ErrDuplicateName, def.Name)
	}
	names[def.Name] = true

	switch def.Rarity {
	case domain.RarityCommon, domain.RarityRare, domain.RarityEpic, domain.RarityLegendary:
	default:
		return fmt.Errorf(ErrFmtItemBadRarity, ErrInvalidConfig, def.Name, def.Rarity)
	}

	if def.Price < 0 {
		return fmt.Errorf(ErrFmtItemNegativePrice, ErrInvalidConfig, def.Name)
	}
	if !domain.ValidEffectType(def.EffectType) {
		return fmt.Errorf(ErrFmtItemBadEffectType, ErrInvalidConfig, def.Name, def.EffectType)
	}
	if def.EffectValue <= 0 {
		return fmt.Errorf(ErrFmtItemBadEffectValue, ErrInvalidConfig, def.Name)
	}

	switch def.EffectType {
	case domain.EffectTypeMultiplier:
		if def.EffectValue < 1 {
			return fmt.Errorf(ErrFmtItemMultiplierBelow, ErrInvalidConfig, def.Name)
		}
	case domain.EffectTypeDebtReduce:
		if def.EffectValue >= 1 {
			return fmt.Errorf(ErrFmtItemDebtFraction, ErrInvalidConfig, def.Name)
		}
	}
	return nil
}

// SyncToDatabase syncs the catalog idempotently. An unchanged file is skipped entirely.
func (l *itemLoader) SyncToDatabase(ctx context.Context, config *Config, repo repository.Catalog, configPath string) (*SyncResult, error) {
	log := logger.FromContext(ctx)

	hasChanged, err := hasFileChanged(ctx, repo, configPath)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCheckFileChangeFailed, err)
	}
	if !hasChanged {
		log.Info(LogMsgConfigUnchanged, "path", configPath)
		return &SyncResult{}, nil
	}

	existing, err := repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetExistingItemsFailed, err)
	}
	byName := make(map[string]*domain.Item, len(existing))
	for i := range existing {
		byName[existing[i].Name] = &existing[i]
	}

	result := &SyncResult{}
	for _, def := range config.Items {
		if err := syncOneItem(ctx, repo, def, byName, result); err != nil {
			return nil, err
		}
	}

	if err := updateSyncMetadata(ctx, repo, configPath); err != nil {
		log.Warn(LogMsgUpdateMetadataFailed, "error", err)
	}

	log.Info(LogMsgSyncCompleted,
		"inserted", result.ItemsInserted,
		"updated", result.ItemsUpdated,
		"skipped", result.ItemsSkipped)

	return result, nil
}

func syncOneItem(ctx context.Context, repo repository.Catalog, def Def, byName map[string]*domain.Item, result *SyncResult) error {
	log := logger.FromContext(ctx)
	want := def.toItem()

	current, ok := byName[def.Name]
	if !ok {
		id, err := repo.InsertItem(ctx, want)
		if err != nil {
			return fmt.Errorf(ErrMsgInsertItemFailed, def.Name, err)
		}
		result.ItemsInserted++
		log.Info(LogMsgInsertedItem, "name", def.Name, "id", id)
		return nil
	}

	want.ID = current.ID
	if *want == *current {
		result.ItemsSkipped++
		return nil
	}

	if err := repo.UpdateItem(ctx, current.ID, want); err != nil {
		return fmt.Errorf(ErrMsgUpdateItemFailed, def.Name, err)
	}
	result.ItemsUpdated++
	log.Info(LogMsgUpdatedItem, "name", def.Name, "id", current.ID)
	return nil
}

// fileFingerprint returns the sha256 of the file and its modification time
func fileFingerprint(configPath string) (string, time.Time, error) {
	info, err := os.Stat(configPath)
	if err != nil {
		return "", time.Time{}, fmt.Errorf(ErrMsgStatConfigFileFailed, err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", time.Time{}, fmt.Errorf(ErrMsgReadForHashFailed, err)
	}

	// timestamptz keeps microseconds
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), info.ModTime().UTC().Truncate(time.Microsecond), nil
}

// hasFileChanged compares the file with the fingerprint recorded at the last sync
func hasFileChanged(ctx context.Context, repo repository.Catalog, configPath string) (bool, error) {
	hash, modTime, err := fileFingerprint(configPath)
	if err != nil {
		return false, err
	}

	meta, err := repo.GetSyncMetadata(ctx, ConfigFileName)
	if err != nil {
		// First sync - no metadata exists
		return true, nil
	}

	return meta.FileHash != hash || !meta.FileModTime.Equal(modTime), nil
}

func updateSyncMetadata(ctx context.Context, repo repository.Catalog, configPath string) error {
	hash, modTime, err := fileFingerprint(configPath)
	if err != nil {
		return err
	}

	return repo.UpsertSyncMetadata(ctx, &domain.SyncMetadata{
		ConfigName:   ConfigFileName,
		LastSyncTime: time.Now(),
		FileHash:     hash,
		FileModTime:  modTime,
	})
}
