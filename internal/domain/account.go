package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a customer account holding a cached balance.
// The balance is a denormalized view of the account's movement history;
// only ledger operations are allowed to change it. The profile fields
// belong to the identity layer and are carried through untouched.
type Account struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDebit checks whether the account can cover a debit of amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return &InsufficientFundsError{Balance: a.Balance, Amount: amount}
	}
	return nil
}

// ApplyDebit returns the balance after a debit of amount.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit of amount.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
