package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/osse101/CloverPit_Go/internal/domain"
	"github.com/osse101/CloverPit_Go/internal/logger"
	"github.com/osse101/CloverPit_Go/internal/metrics"
	"github.com/osse101/CloverPit_Go/internal/repository"
)

// Spin charges the bet, generates a grid and pays out matched lines
func (s *service) Spin(ctx context.Context, sessionID string) (result *domain.SpinResult, err error) {
	ctx, span := s.startSpan(ctx, OpSpin, attribute.String(logger.AttrKeySessionID, sessionID))
	defer func() { finish(ctx, span, OpSpin, err) }()

	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	end, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer end()

	err = s.mutate(ctx, domain.LockPrefixSpin, sessionID, domain.LeaseSpin, func(ctx context.Context, tx repository.GameTx) error {
		session, err := lockSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if session.Money < domain.SpinCost {
			return fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, domain.SpinCost, session.Money)
		}

		items, err := tx.GetMultiplierItems(ctx, sessionID)
		if err != nil {
			return persistence(fmt.Errorf(ErrMsgGetItemsFailed, err))
		}

		outcome := s.engine.Spin(items)
		ticketsEarned := s.engine.RollTickets()

		session.Money = session.Money - domain.SpinCost + outcome.Payout
		session.Tickets += ticketsEarned
		if err := tx.UpdateSession(ctx, session); err != nil {
			return persistence(fmt.Errorf(ErrMsgUpdateSessionFailed, err))
		}

		record := &domain.HistoryRecord{
			SessionID:   sessionID,
			Round:       session.Round,
			Grid:        outcome.Grid,
			MoneyChange: outcome.Payout - domain.SpinCost,
			MoneyAfter:  session.Money,
			DebtAfter:   session.Debt,
		}
		if err := tx.AppendHistory(ctx, record); err != nil {
			return persistence(fmt.Errorf(ErrMsgAppendHistoryFailed, err))
		}

		result = &domain.SpinResult{
			Grid:          outcome.Grid,
			WinLines:      outcome.WinLines,
			Payout:        outcome.Payout,
			Multiplier:    outcome.Multiplier,
			BetAmount:     domain.SpinCost,
			NetChange:     outcome.Payout - domain.SpinCost,
			NewMoney:      session.Money,
			TicketsEarned: ticketsEarned,
			NewTickets:    session.Tickets,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SpinsTotal.Inc()
	metrics.SpinPayout.Observe(float64(result.Payout))
	for _, line := range result.WinLines {
		metrics.WinLinesTotal.WithLabelValues(line.Name).Inc()
	}
	logger.FromContext(ctx).Info(LogMsgSpinCompleted,
		logger.AttrKeySessionID, sessionID,
		"payout", result.Payout,
		"win_lines", len(result.WinLines),
		"new_money", result.NewMoney)

	return result, nil
}
