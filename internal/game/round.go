package game

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"

	"github.com/osse101/CloverPit_Go/internal/domain"
	"github.com/osse101/CloverPit_Go/internal/logger"
	"github.com/osse101/CloverPit_Go/internal/metrics"
	"github.com/osse101/CloverPit_Go/internal/repository"
)

// EndRound pays the debt from the balance. A balance below the debt ends the game.
func (s *service) EndRound(ctx context.Context, sessionID string) (result *domain.EndRoundResult, err error) {
	ctx, span := s.startSpan(ctx, OpEndRound, attribute.String(logger.AttrKeySessionID, sessionID))
	defer func() { finish(ctx, span, OpEndRound, err) }()

	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	end, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer end()

	// the round seen before queueing on the lock; a caller that waited behind
	// another EndRound for the same round gets the applied result back
	current, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, persistence(fmt.Errorf(ErrMsgGetSessionFailed, err))
	}
	expectedRound := current.Round
	replayed := false

	err = s.mutate(ctx, domain.LockPrefixEndRound, sessionID, domain.LeaseEndRound, func(ctx context.Context, tx repository.GameTx) error {
		session, err := lockSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}

		if session.Round != expectedRound {
			replayed = true
			result = roundClearedResult(session, expectedRound)
			return nil
		}

		remaining := float64(session.Money) - session.Debt
		if remaining < 0 {
			session.GameOver = true
			if err := tx.UpdateSession(ctx, session); err != nil {
				return persistence(fmt.Errorf(ErrMsgUpdateSessionFailed, err))
			}
			result = &domain.EndRoundResult{
				GameOver:   true,
				Message:    MsgGameOver,
				FinalRound: session.Round,
			}
			return nil
		}

		cleared := session.Round

		session.Debt = domain.RoundDebt(session.Debt * domain.DebtGrowthFactor)
		session.Round++
		session.Tickets += bonusTickets(cleared)
		session.Money = int64(math.Floor(remaining))
		if err := tx.UpdateSession(ctx, session); err != nil {
			return persistence(fmt.Errorf(ErrMsgUpdateSessionFailed, err))
		}

		result = roundClearedResult(session, cleared)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	if replayed {
		log.Info(LogMsgRoundAlreadyCleared, logger.AttrKeySessionID, sessionID, "round", expectedRound)
		return result, nil
	}
	if result.GameOver {
		metrics.GameOversTotal.Inc()
		log.Info(LogMsgGameOver, logger.AttrKeySessionID, sessionID, "final_round", result.FinalRound)
	} else {
		metrics.RoundsCleared.Inc()
		log.Info(LogMsgRoundCleared, logger.AttrKeySessionID, sessionID, "new_round", *result.NewRound)
	}

	return result, nil
}

func bonusTickets(clearedRound int) int {
	return domain.BonusTicketsBase + clearedRound*domain.BonusTicketsPerRound
}

// roundClearedResult reports the state of a session right after cleared was paid off
func roundClearedResult(session *domain.GameSession, cleared int) *domain.EndRoundResult {
	bonus := bonusTickets(cleared)
	newRound, newMoney, newDebt, newTickets := session.Round, session.Money, session.Debt, session.Tickets
	return &domain.EndRoundResult{
		Message:      fmt.Sprintf(MsgRoundClearedFmt, cleared),
		NewRound:     &newRound,
		NewMoney:     &newMoney,
		NewDebt:      &newDebt,
		BonusTickets: &bonus,
		NewTickets:   &newTickets,
	}
}
