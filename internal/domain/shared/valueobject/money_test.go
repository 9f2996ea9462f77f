package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(100), LKR)
	require.NoError(t, err)
	assert.Equal(t, LKR, m.Currency())
	assert.Equal(t, "100.00", m.StringFixed(2))

	_, err = NewMoney(decimal.NewFromInt(100), "")
	assert.Error(t, err)
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("12.345", USD)
	require.NoError(t, err)
	assert.Equal(t, "12.345", m.Amount().String())

	_, err = NewMoneyFromString("abc", USD)
	assert.Error(t, err)
}

func TestMoney_Add(t *testing.T) {
	a, _ := NewMoneyLKRFromString("10.50")
	b, _ := NewMoneyLKRFromString("4.50")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "15.00", sum.StringFixed(2))

	usd, _ := NewMoneyFromString("1.00", USD)
	_, err = a.Add(usd)
	assert.Error(t, err)
}

func TestMoney_Subtract(t *testing.T) {
	a, _ := NewMoneyLKRFromString("10.00")
	b, _ := NewMoneyLKRFromString("12.00")

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.IsNegative())
	assert.Equal(t, "-2.00", diff.StringFixed(2))
}

func TestMoney_Multiply(t *testing.T) {
	m, _ := NewMoneyLKRFromString("3.30")
	result := m.Multiply(decimal.RequireFromString("2.5"))
	assert.Equal(t, "8.25", result.StringFixed(2))

	assert.Equal(t, "9.90", m.MultiplyByInt(3).StringFixed(2))
}

func TestMoney_Round(t *testing.T) {
	m, _ := NewMoneyLKRFromString("2.005")
	assert.Equal(t, "2.01", m.Round(2).StringFixed(2))
}

func TestMoney_Comparisons(t *testing.T) {
	a, _ := NewMoneyLKRFromString("5.00")
	b, _ := NewMoneyLKRFromString("7.00")

	less, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, greater)

	c, _ := NewMoneyLKRFromString("5.00")
	assert.True(t, a.Equals(c))
	assert.False(t, a.Equals(b))
}

func TestMoney_JSON(t *testing.T) {
	m, _ := NewMoneyLKRFromString("19.99")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"19.99","currency":"LKR"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("42.75"))
	assert.Equal(t, "42.75", m.Amount().String())
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}

func TestMoney_CalculatePercentage(t *testing.T) {
	m, _ := NewMoneyLKRFromString("25.00")
	tax := m.CalculatePercentage(decimal.NewFromInt(10))
	assert.Equal(t, "2.50", tax.StringFixed(2))
}
