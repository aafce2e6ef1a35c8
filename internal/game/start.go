package game

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/osse101/CloverPit_Go/internal/domain"
	"github.com/osse101/CloverPit_Go/internal/logger"
	"github.com/osse101/CloverPit_Go/internal/metrics"
	"github.com/osse101/CloverPit_Go/internal/repository"
)

// newSessionID returns 32 lowercase hex characters from 16 random bytes
func newSessionID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// Start creates a new game session with the starting balance
func (s *service) Start(ctx context.Context, playerName string) (result *domain.StartResult, err error) {
	ctx, span := s.startSpan(ctx, OpStart)
	defer func() { finish(ctx, span, OpStart, err) }()

	name, err := normalizePlayerName(playerName)
	if err != nil {
		return nil, err
	}

	end, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer end()

	sessionID := newSessionID()
	span.SetAttributes(attribute.String(logger.AttrKeySessionID, sessionID))

	session := domain.NewGameSession(sessionID, name, s.now())
	err = s.mutate(ctx, domain.LockPrefixGameStart, sessionID, domain.LeaseGameStart, func(ctx context.Context, tx repository.GameTx) error {
		if err := tx.CreateSession(ctx, session); err != nil {
			return persistence(fmt.Errorf(ErrMsgCreateSessionFailed, err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SessionsStarted.Inc()
	logger.FromContext(ctx).Info(LogMsgGameStarted, logger.AttrKeySessionID, sessionID, "player_name", name)

	return &domain.StartResult{
		SessionID:  session.SessionID,
		PlayerName: session.PlayerName,
		Money:      session.Money,
		Debt:       session.Debt,
		Round:      session.Round,
		Tickets:    session.Tickets,
	}, nil
}
