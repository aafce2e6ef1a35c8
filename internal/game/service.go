// Package game runs the slot-machine session operations. Every mutation holds
// the session's named lock and its row lock for the whole transaction.
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/osse101/CloverPit_Go/internal/concurrency"
	"github.com/osse101/CloverPit_Go/internal/domain"
	"github.com/osse101/CloverPit_Go/internal/logger"
	"github.com/osse101/CloverPit_Go/internal/metrics"
	"github.com/osse101/CloverPit_Go/internal/repository"
	"github.com/osse101/CloverPit_Go/internal/slots"
)

// Service defines the interface for game session operations
type Service interface {
	Start(ctx context.Context, playerName string) (*domain.StartResult, error)
	Spin(ctx context.Context, sessionID string) (*domain.SpinResult, error)
	EndRound(ctx context.Context, sessionID string) (*domain.EndRoundResult, error)
	BuyItem(ctx context.Context, sessionID string, itemID int) (*domain.BuyItemResult, error)
	GetState(ctx context.Context, sessionID string) (*domain.GameState, error)
	GetHistory(ctx context.Context, sessionID string) ([]domain.HistoryRecord, error)
	ListShopItems(ctx context.Context) ([]domain.Item, error)
	InvalidateShopCache()
	Shutdown(ctx context.Context) error
}

type service struct {
	repo      repository.Game
	locks     *concurrency.LockManager
	engine    *slots.Engine
	shopCache *expirable.LRU[string, []domain.Item]
	tracer    trace.Tracer
	now       func() time.Time

	// in-flight operations hold a read lock; Shutdown takes the write lock
	inflight sync.RWMutex
	closed   bool
}

// Option configures the service
type Option func(*service)

// WithClock overrides the time source used for new sessions
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// WithShopCacheTTL overrides how long the shop catalog is cached
func WithShopCacheTTL(ttl time.Duration) Option {
	return func(s *service) {
		s.shopCache = expirable.NewLRU[string, []domain.Item](ShopCacheSize, nil, ttl)
	}
}

// NewService creates a new game service
func NewService(repo repository.Game, locks *concurrency.LockManager, engine *slots.Engine, opts ...Option) Service {
	s := &service{
		repo:      repo,
		locks:     locks,
		engine:    engine,
		shopCache: expirable.NewLRU[string, []domain.Item](ShopCacheSize, nil, ShopCacheTTL),
		tracer:    otel.Tracer(TracerName),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// begin registers an in-flight operation. The returned func must be called when it finishes.
func (s *service) begin() (func(), error) {
	s.inflight.RLock()
	if s.closed {
		s.inflight.RUnlock()
		return nil, fmt.Errorf("%w: %s", domain.ErrLockContention, ErrMsgShuttingDown)
	}
	return s.inflight.RUnlock, nil
}

// Shutdown waits for in-flight operations and rejects new ones
func (s *service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Lock()
		s.closed = true
		s.inflight.Unlock()
		close(done)
	}()

	select {
	case <-done:
		s.shopCache.Purge()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// startSpan opens the operation span
func (s *service) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "game."+op, trace.WithAttributes(attrs...))
}

// finish closes the span and records failures
func finish(ctx context.Context, span trace.Span, op string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.OperationErrors.WithLabelValues(op, errorReason(err)).Inc()
		logger.FromContext(ctx).Warn(LogMsgOperationFailed, "operation", op, "error", err)
	}
	span.End()
}

// errorReason is a low-cardinality label for an error
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidationFailure):
		return "validation"
	case errors.Is(err, domain.ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, domain.ErrItemNotFound):
		return "item_not_found"
	case errors.Is(err, domain.ErrSessionTerminal):
		return "session_terminal"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrInsufficientTickets):
		return "insufficient_tickets"
	case errors.Is(err, domain.ErrLockContention):
		return "lock_contention"
	default:
		return "persistence"
	}
}

// sweep removes expired locks; failures only delay cleanup
func (s *service) sweep(ctx context.Context) {
	if _, err := s.locks.Sweep(ctx); err != nil {
		logger.FromContext(ctx).Warn(LogMsgSweepFailed, "error", err)
	}
}

// mutate runs fn inside the named lock and a transaction, committing when fn succeeds
func (s *service) mutate(ctx context.Context, lockPrefix, sessionID string, lease time.Duration, fn func(ctx context.Context, tx repository.GameTx) error) error {
	s.sweep(ctx)

	return s.locks.WithLock(ctx, domain.LockName(lockPrefix, sessionID), lease, func(ctx context.Context) error {
		tx, err := s.repo.BeginTx(ctx)
		if err != nil {
			return persistence(fmt.Errorf(ErrMsgBeginTransactionFailed, err))
		}
		defer repository.SafeRollback(ctx, tx)

		if err := fn(ctx, tx); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return persistence(fmt.Errorf(ErrMsgCommitTransactionFailed, err))
		}
		return nil
	})
}

// lockSession takes the row lock and rejects finished games
func lockSession(ctx context.Context, tx repository.GameTx, sessionID string) (*domain.GameSession, error) {
	session, err := tx.GetSessionForUpdate(ctx, sessionID)
	if err != nil {
		return nil, persistence(fmt.Errorf(ErrMsgGetSessionFailed, err))
	}
	if session.GameOver {
		return nil, fmt.Errorf("%w: session %s", domain.ErrSessionTerminal, sessionID)
	}
	return session, nil
}

var domainErrors = []error{
	domain.ErrLockContention,
	domain.ErrSessionNotFound,
	domain.ErrSessionTerminal,
	domain.ErrInsufficientFunds,
	domain.ErrInsufficientTickets,
	domain.ErrItemNotFound,
	domain.ErrPersistenceFailure,
	domain.ErrValidationFailure,
}

// persistence tags errors that carry no domain sentinel as persistence failures
func persistence(err error) error {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, err)
}

// GetState returns the session and its owned items without locking
func (s *service) GetState(ctx context.Context, sessionID string) (state *domain.GameState, err error) {
	ctx, span := s.startSpan(ctx, OpGetState, attribute.String(logger.AttrKeySessionID, sessionID))
	defer func() { finish(ctx, span, OpGetState, err) }()

	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	end, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer end()

	s.sweep(ctx)

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, persistence(fmt.Errorf(ErrMsgGetSessionFailed, err))
	}

	items, err := s.repo.GetPlayerItems(ctx, sessionID)
	if err != nil {
		return nil, persistence(fmt.Errorf(ErrMsgGetItemsFailed, err))
	}

	return &domain.GameState{Session: *session, Items: items}, nil
}

// GetHistory returns the spin audit trail of a session, oldest first
func (s *service) GetHistory(ctx context.Context, sessionID string) (records []domain.HistoryRecord, err error) {
	ctx, span := s.startSpan(ctx, OpGetHistory, attribute.String(logger.AttrKeySessionID, sessionID))
	defer func() { finish(ctx, span, OpGetHistory, err) }()

	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	end, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer end()

	s.sweep(ctx)

	if _, err := s.repo.GetSession(ctx, sessionID); err != nil {
		return nil, persistence(fmt.Errorf(ErrMsgGetSessionFailed, err))
	}

	records, err = s.repo.ListHistory(ctx, sessionID)
	if err != nil {
		return nil, persistence(fmt.Errorf(ErrMsgListHistoryFailed, err))
	}
	if records == nil {
		records = []domain.HistoryRecord{}
	}
	return records, nil
}
