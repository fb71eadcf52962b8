package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the polarity of a transaction or category.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is income or expense.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Opposite returns the other polarity.
func (t TransactionType) Opposite() TransactionType {
	if t == TransactionTypeIncome {
		return TransactionTypeExpense
	}
	return TransactionTypeIncome
}

// ParseTransactionType validates a raw type string.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		return "", ErrInvalidTransactionType
	}
	return t, nil
}

// Effect is what a single transaction contributes to a wallet balance.
type Effect struct {
	WalletID *uuid.UUID
	Type     TransactionType
	Amount   decimal.Decimal
}

// Delta is the signed amount: positive for income, negative for expense.
func (e Effect) Delta() decimal.Decimal {
	if e.Type == TransactionTypeExpense {
		return e.Amount.Neg()
	}
	return e.Amount
}

// Adjustment is a signed change to apply to one wallet balance.
type Adjustment struct {
	WalletID uuid.UUID
	Delta    decimal.Decimal
}

// Reconcile returns the balance adjustments that move wallets from a state
// containing before to a state containing after. A nil before is a create, a
// nil after is a delete. Adjustments on the same wallet are merged and zero
// deltas are dropped, so an update that changes nothing yields no writes.
func Reconcile(before, after *Effect) []Adjustment {
	var adjustments []Adjustment
	add := func(walletID uuid.UUID, delta decimal.Decimal) {
		for i := range adjustments {
			if adjustments[i].WalletID == walletID {
				adjustments[i].Delta = adjustments[i].Delta.Add(delta)
				return
			}
		}
		adjustments = append(adjustments, Adjustment{WalletID: walletID, Delta: delta})
	}

	if before != nil && before.WalletID != nil {
		add(*before.WalletID, before.Delta().Neg())
	}
	if after != nil && after.WalletID != nil {
		add(*after.WalletID, after.Delta())
	}

	out := adjustments[:0]
	for _, a := range adjustments {
		if !a.Delta.IsZero() {
			out = append(out, a)
		}
	}
	return out
}
