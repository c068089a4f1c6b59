package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/autoledger-in/tallybridge/internal/utils/money"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRound2(t *testing.T) {
	assert.True(t, d("2700.01").Equal(money.Round2(d("2700.005"))))
	assert.True(t, d("2700.00").Equal(money.Round2(d("2700.004"))))
	assert.True(t, d("-2700.01").Equal(money.Round2(d("-2700.005"))))
}

func TestRoundWhole(t *testing.T) {
	assert.True(t, d("100").Equal(money.RoundWhole(d("100.49"))))
	assert.True(t, d("101").Equal(money.RoundWhole(d("100.5"))))
	assert.True(t, d("50400").Equal(money.RoundWhole(d("50400.30"))))
	assert.True(t, d("0").Equal(money.RoundWhole(d("-0.5"))))
}

func TestFormat2(t *testing.T) {
	assert.Equal(t, "106200.00", money.Format2(d("106200")))
	assert.Equal(t, "-16200.00", money.Format2(d("-16200")))
	assert.Equal(t, "0.30", money.Format2(d("0.3")))
}
