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

// BuyItem spends tickets on a catalog item and applies its immediate effect
func (s *service) BuyItem(ctx context.Context, sessionID string, itemID int) (result *domain.BuyItemResult, err error) {
	ctx, span := s.startSpan(ctx, OpBuyItem,
		attribute.String(logger.AttrKeySessionID, sessionID),
		attribute.Int("item_id", itemID))
	defer func() { finish(ctx, span, OpBuyItem, err) }()

	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	if err := validateItemID(itemID); err != nil {
		return nil, err
	}

	end, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer end()

	err = s.mutate(ctx, domain.LockPrefixBuyItem, sessionID, domain.LeaseBuyItem, func(ctx context.Context, tx repository.GameTx) error {
		item, err := s.repo.GetItemByID(ctx, itemID)
		if err != nil {
			return persistence(fmt.Errorf(ErrMsgGetItemFailed, err))
		}
		effect, err := item.Effect()
		if err != nil {
			return fmt.Errorf("%w: "+ErrMsgDecodeEffectFailed, domain.ErrPersistenceFailure, err)
		}

		session, err := lockSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if session.Tickets < item.Price {
			return fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientTickets, item.Price, session.Tickets)
		}

		session.Tickets -= item.Price
		quantity, err := tx.AddPlayerItem(ctx, sessionID, item.ID)
		if err != nil {
			return persistence(fmt.Errorf(ErrMsgAddItemFailed, err))
		}

		applyEffect(session, effect)

		if err := tx.UpdateSession(ctx, session); err != nil {
			return persistence(fmt.Errorf(ErrMsgUpdateSessionFailed, err))
		}

		result = &domain.BuyItemResult{
			Item:       *item,
			Quantity:   quantity,
			NewTickets: session.Tickets,
			NewMoney:   session.Money,
			NewDebt:    session.Debt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ItemsBought.WithLabelValues(result.Item.Name).Inc()
	logger.FromContext(ctx).Info(LogMsgItemPurchased,
		logger.AttrKeySessionID, sessionID,
		"item", result.Item.Name,
		"quantity", result.Quantity)

	return result, nil
}

// applyEffect applies the purchase-time part of an effect. Multipliers only act on spins.
func applyEffect(session *domain.GameSession, effect domain.Effect) {
	switch e := effect.(type) {
	case domain.BonusMoneyEffect:
		session.Money += e.Amount
	case domain.DebtReduceEffect:
		session.Debt = domain.RoundDebt(session.Debt * (1 - e.Fraction))
	case domain.MultiplierEffect:
	}
}

// ListShopItems returns the catalog, cached for a short TTL
func (s *service) ListShopItems(ctx context.Context) (items []domain.Item, err error) {
	ctx, span := s.startSpan(ctx, OpListShopItems)
	defer func() { finish(ctx, span, OpListShopItems, err) }()

	if cached, ok := s.shopCache.Get(ShopCacheKey); ok {
		logger.FromContext(ctx).Debug(LogMsgShopCacheHit, "count", len(cached))
		return cached, nil
	}

	items, err = s.repo.ListItems(ctx)
	if err != nil {
		return nil, persistence(fmt.Errorf(ErrMsgListItemsFailed, err))
	}
	if items == nil {
		items = []domain.Item{}
	}

	s.shopCache.Add(ShopCacheKey, items)
	return items, nil
}

// InvalidateShopCache drops the cached catalog
func (s *service) InvalidateShopCache() {
	s.shopCache.Purge()
	logger.Info(LogMsgShopCacheCleared)
}
