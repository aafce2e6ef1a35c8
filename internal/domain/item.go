package domain

import (
	"fmt"
	"math"
)

// EffectType is the persisted discriminator of an item effect
type EffectType string

// Effect types
const (
	EffectTypeMultiplier EffectType = "multiplier"
	EffectTypeBonusMoney EffectType = "bonus_money"
	EffectTypeDebtReduce EffectType = "debt_reduce"
)

// Item rarities, in catalog sort order
const (
	RarityCommon    = "common"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
	RarityRare      = "rare"
)

// Item is a shop catalog entry. Price is in tickets.
type Item struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Rarity      string     `json:"rarity"`
	Price       int        `json:"price"`
	EffectType  EffectType `json:"effect_type"`
	EffectValue float64    `json:"effect_value"`
}

// Effect decodes the item's effect into its variant
func (i Item) Effect() (Effect, error) {
	return NewEffect(i.EffectType, i.EffectValue)
}

// PlayerItem is an owned item with its stacked quantity
type PlayerItem struct {
	Item
	Quantity int `json:"quantity"`
}

// Effect is the closed set of item effects: MultiplierEffect, BonusMoneyEffect, DebtReduceEffect
type Effect interface {
	Type() EffectType
	effect()
}

// MultiplierEffect adds (Factor - 1) per unit to the spin payout multiplier
type MultiplierEffect struct {
	Factor float64
}

// BonusMoneyEffect credits Amount to money on purchase
type BonusMoneyEffect struct {
	Amount int64
}

// DebtReduceEffect multiplies debt by (1 - Fraction) on purchase
type DebtReduceEffect struct {
	Fraction float64
}

func (MultiplierEffect) Type() EffectType { return EffectTypeMultiplier }
func (BonusMoneyEffect) Type() EffectType { return EffectTypeBonusMoney }
func (DebtReduceEffect) Type() EffectType { return EffectTypeDebtReduce }

func (MultiplierEffect) effect() {}
func (BonusMoneyEffect) effect() {}
func (DebtReduceEffect) effect() {}

// NewEffect builds the effect variant from its persisted form
func NewEffect(effectType EffectType, value float64) (Effect, error) {
	switch effectType {
	case EffectTypeMultiplier:
		return MultiplierEffect{Factor: value}, nil
	case EffectTypeBonusMoney:
		return BonusMoneyEffect{Amount: int64(math.Floor(value))}, nil
	case EffectTypeDebtReduce:
		return DebtReduceEffect{Fraction: value}, nil
	default:
		return nil, fmt.Errorf("%w: unknown effect type %q", ErrValidationFailure, effectType)
	}
}

// ValidEffectType reports whether t names a known effect
func ValidEffectType(t EffectType) bool {
	switch t {
	case EffectTypeMultiplier, EffectTypeBonusMoney, EffectTypeDebtReduce:
		return true
	}
	return false
}
