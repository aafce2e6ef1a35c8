package postgres

// PostgreSQL Error Codes
const (
	PgErrorCodeUniqueViolation  = "23505"
	PgErrorCodeDeadlockDetected = "40P01"
	PgErrorCodeLockNotAvailable = "55P03"
)

// ============================================================================
// Game Session Queries
// ============================================================================

const (
	SQLInsertSession = `
		INSERT INTO game_sessions (session_id, player_name, money, debt, round, tickets, game_over, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	sessionColumns = `session_id, player_name, money, debt::float8, round, tickets, game_over, created_at, updated_at`

	SQLGetSession = `SELECT ` + sessionColumns + ` FROM game_sessions WHERE session_id = $1`

	SQLGetSessionForUpdate = `SELECT ` + sessionColumns + ` FROM game_sessions WHERE session_id = $1 FOR UPDATE`

	SQLUpdateSession = `
		UPDATE game_sessions
		SET money = $2, debt = $3, round = $4, tickets = $5, game_over = $6, updated_at = NOW()
		WHERE session_id = $1
		RETURNING updated_at
	`
)

// ============================================================================
// Item Queries
// ============================================================================

const (
	itemColumns = `i.id, i.name, i.description, i.rarity, i.price, i.effect_type, i.effect_value`

	SQLGetItemByID = `SELECT ` + itemColumns + ` FROM items i WHERE i.id = $1`

	SQLListItems = `SELECT ` + itemColumns + ` FROM items i ORDER BY i.rarity, i.price, i.id`

	SQLGetPlayerItems = `
		SELECT ` + itemColumns + `, pi.quantity
		FROM player_items pi
		JOIN items i ON i.id = pi.item_id
		WHERE pi.session_id = $1
		ORDER BY i.rarity, i.price, i.id
	`

	SQLGetMultiplierItems = `
		SELECT ` + itemColumns + `, pi.quantity
		FROM player_items pi
		JOIN items i ON i.id = pi.item_id
		WHERE pi.session_id = $1 AND i.effect_type = 'multiplier'
		ORDER BY i.id
	`

	SQLUpsertPlayerItem = `
		INSERT INTO player_items (session_id, item_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (session_id, item_id) DO UPDATE SET quantity = player_items.quantity + 1
		RETURNING quantity
	`

	SQLInsertItem = `
		INSERT INTO items (name, description, rarity, price, effect_type, effect_value)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	SQLUpdateItem = `
		UPDATE items
		SET name = $2, description = $3, rarity = $4, price = $5, effect_type = $6, effect_value = $7
		WHERE id = $1
	`

	SQLGetSyncMetadata = `
		SELECT config_name, last_sync_time, file_hash, file_mod_time
		FROM sync_metadata WHERE config_name = $1
	`

	SQLUpsertSyncMetadata = `
		INSERT INTO sync_metadata (config_name, last_sync_time, file_hash, file_mod_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (config_name) DO UPDATE
		SET last_sync_time = EXCLUDED.last_sync_time, file_hash = EXCLUDED.file_hash, file_mod_time = EXCLUDED.file_mod_time
	`
)

// ============================================================================
// History Queries
// ============================================================================

const (
	SQLInsertHistory = `
		INSERT INTO game_history (session_id, round, spin_result, money_change, money_after, debt_after)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	SQLListHistory = `
		SELECT id, session_id, round, spin_result, money_change, money_after, debt_after::float8, created_at
		FROM game_history WHERE session_id = $1 ORDER BY id
	`
)

// ============================================================================
// Lock Queries
// ============================================================================

const (
	// Takes the lock when absent, or overwrites it only when the current lease has expired
	SQLTryAcquireLock = `
		INSERT INTO critical_locks (lock_name, locked_by, locked_at, expires_at)
		VALUES ($1, $2, NOW(), NOW() + ($3::float8 * INTERVAL '1 millisecond'))
		ON CONFLICT (lock_name) DO UPDATE
		SET locked_by = EXCLUDED.locked_by, locked_at = EXCLUDED.locked_at, expires_at = EXCLUDED.expires_at
		WHERE critical_locks.expires_at < NOW()
		RETURNING locked_by
	`

	SQLReleaseLock = `DELETE FROM critical_locks WHERE lock_name = $1 AND locked_by = $2`

	SQLDeleteExpiredLocks = `DELETE FROM critical_locks WHERE expires_at < NOW()`

	SQLGetLock = `SELECT lock_name, locked_by, locked_at, expires_at FROM critical_locks WHERE lock_name = $1`
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToMarshalGrid      = "failed to marshal spin grid"
)
