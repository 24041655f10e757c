package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNextBalance(t *testing.T) {
	tests := []struct {
		name       string
		accountDir Direction
		entryDir   Direction
		value      string
		balance    string
		want       string
	}{
		{
			name:       "debit entry on debit account increases",
			accountDir: DirectionDebit,
			entryDir:   DirectionDebit,
			value:      "100.00",
			balance:    "1000.00",
			want:       "1100.00",
		},
		{
			name:       "credit entry on debit account decreases",
			accountDir: DirectionDebit,
			entryDir:   DirectionCredit,
			value:      "100.00",
			balance:    "1000.00",
			want:       "900.00",
		},
		{
			name:       "credit entry on credit account increases",
			accountDir: DirectionCredit,
			entryDir:   DirectionCredit,
			value:      "100.00",
			balance:    "0.00",
			want:       "100.00",
		},
		{
			name:       "debit entry on credit account goes negative",
			accountDir: DirectionCredit,
			entryDir:   DirectionDebit,
			value:      "100.00",
			balance:    "0.00",
			want:       "-100.00",
		},
		{
			name:       "fractional values stay exact",
			accountDir: DirectionDebit,
			entryDir:   DirectionDebit,
			value:      "0.1",
			balance:    "0.2",
			want:       "0.3",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NextBalance(tc.accountDir, tc.entryDir,
				decimal.RequireFromString(tc.value), decimal.RequireFromString(tc.balance))
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"got %s, want %s", got, tc.want)
		})
	}
}

func TestDirectionIsValid(t *testing.T) {
	assert.True(t, DirectionDebit.IsValid())
	assert.True(t, DirectionCredit.IsValid())
	assert.False(t, Direction("").IsValid())
	assert.False(t, Direction("DEBIT").IsValid())
}
