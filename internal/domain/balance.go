package domain

import "github.com/shopspring/decimal"

// NextBalance applies one entry to an account balance. An entry whose
// direction matches the account's natural direction increases the balance;
// an opposite entry decreases it.
func NextBalance(accountDir, entryDir Direction, value, balance decimal.Decimal) decimal.Decimal {
	if entryDir == accountDir {
		return balance.Add(value)
	}
	return balance.Sub(value)
}
