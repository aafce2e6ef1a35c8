package game

import "time"

// Service configuration
const (
	TracerName = "github.com/osse101/CloverPit_Go/internal/game"

	ShopCacheKey  = "shop_items"
	ShopCacheSize = 1
	ShopCacheTTL  = 30 * time.Second
)

// Operation names, used for spans, metrics and logs
const (
	OpStart         = "start"
	OpSpin          = "spin"
	OpEndRound      = "end_round"
	OpBuyItem       = "buy_item"
	OpGetState      = "get_state"
	OpGetHistory    = "get_history"
	OpListShopItems = "list_shop_items"
)

// Player-facing messages
const (
	MsgRoundClearedFmt = "Round %d cleared!"
	MsgGameOver        = "Could not pay the debt! Game over!"
)

// Error messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgGetSessionFailed        = "failed to get session: %w"
	ErrMsgCreateSessionFailed     = "failed to create session: %w"
	ErrMsgUpdateSessionFailed     = "failed to update session: %w"
	ErrMsgGetItemsFailed          = "failed to get player items: %w"
	ErrMsgGetItemFailed           = "failed to get item: %w"
	ErrMsgAddItemFailed           = "failed to add player item: %w"
	ErrMsgAppendHistoryFailed     = "failed to append history: %w"
	ErrMsgListItemsFailed         = "failed to list shop items: %w"
	ErrMsgListHistoryFailed       = "failed to list history: %w"
	ErrMsgDecodeEffectFailed      = "failed to decode item effect: %v"
	ErrMsgShuttingDown            = "service is shutting down"
)

// Validation error fragments
const (
	ErrFmtPlayerNameLength = "%w: player name must be between %d and %d characters"
	ErrFmtPlayerNameHTML   = "%w: player name must not contain HTML tags"
	ErrFmtSessionIDFormat  = "%w: invalid session id"
	ErrFmtItemIDInvalid    = "%w: invalid item id %d"
)

// Log messages
const (
	LogMsgGameStarted         = "Game started"
	LogMsgSpinCompleted       = "Spin completed"
	LogMsgRoundCleared        = "Round cleared"
	LogMsgRoundAlreadyCleared = "Round already cleared by a concurrent call"
	LogMsgGameOver            = "Game over"
	LogMsgItemPurchased       = "Item purchased"
	LogMsgSweepFailed         = "Failed to sweep expired locks"
	LogMsgShopCacheHit        = "Shop items served from cache"
	LogMsgShopCacheCleared    = "Shop cache invalidated"
	LogMsgOperationFailed     = "Game operation failed"
)
