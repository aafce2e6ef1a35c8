package item

// ==================== Configuration Files ====================

const (
	// ConfigFileName keys the sync metadata row for the catalog
	ConfigFileName = "items.json"

	// ItemsSchemaPath is resolved relative to the module root
	ItemsSchemaPath = "configs/schemas/items.schema.json"
)

// ==================== Error Messages ====================

// File operation error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read items config file: %w"
	ErrMsgParseConfigFailed    = "failed to parse items config: %w"
	ErrMsgSchemaFailed         = "schema validation failed for %s: %w"
	ErrMsgStatConfigFileFailed = "failed to stat config file: %w"
	ErrMsgReadForHashFailed    = "failed to read config file: %w"
)

// Validation error fragments
const (
	ErrMsgConfigNil      = "config is nil"
	ErrMsgNoItemsDefined = "no items defined"
)

// Database operation error messages
const (
	ErrMsgCheckFileChangeFailed  = "failed to check if file changed: %w"
	ErrMsgGetExistingItemsFailed = "failed to get existing items: %w"
	ErrMsgUpdateItemFailed       = "failed to update item '%s': %w"
	ErrMsgInsertItemFailed       = "failed to insert item '%s': %w"
)

// ==================== Log Messages ====================

const (
	LogMsgConfigUnchanged      = "Items config file unchanged, skipping sync"
	LogMsgSyncCompleted        = "Items sync completed"
	LogMsgUpdatedItem          = "Updated item"
	LogMsgInsertedItem         = "Inserted item"
	LogMsgUpdateMetadataFailed = "Failed to update sync metadata"
)

// ==================== Format Strings for Error Construction ====================

const (
	ErrFmtItemAtIndexEmpty    = "%w: item at index %d has empty name"
	ErrFmtItemBadRarity       = "%w: item '%s' has unknown rarity %q"
	ErrFmtItemNegativePrice   = "%w: item '%s' has negative price"
	ErrFmtItemBadEffectType   = "%w: item '%s' has unknown effect_type %q"
	ErrFmtItemBadEffectValue  = "%w: item '%s' has non-positive effect_value"
	ErrFmtItemMultiplierBelow = "%w: item '%s' multiplier must be at least 1"
	ErrFmtItemDebtFraction    = "%w: item '%s' debt_reduce fraction must be below 1"
)
