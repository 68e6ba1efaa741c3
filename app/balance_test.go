package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duylongpro99/rsm/pallets/balances"
)

func TestBalance_Arithmetic(t *testing.T) {
	var zero Balance
	assert.True(t, zero.IsZero())
	assert.Equal(t, "0", zero.String())

	sum, ok := NewBalance(40).CheckedAdd(NewBalance(2))
	require.True(t, ok)
	assert.Equal(t, NewBalance(42), sum)
	assert.Equal(t, "42", sum.String())

	diff, ok := NewBalance(42).CheckedSub(NewBalance(42))
	require.True(t, ok)
	assert.True(t, diff.IsZero())

	_, ok = NewBalance(1).CheckedSub(NewBalance(2))
	assert.False(t, ok)

	_, ok = MaxBalance().CheckedAdd(NewBalance(1))
	assert.False(t, ok)
}

func TestBalance_Parse(t *testing.T) {
	b, err := ParseBalance("340282366920938463463374607431768211456") // 2^128
	require.NoError(t, err)
	assert.Equal(t, "340282366920938463463374607431768211456", b.String())

	_, err = ParseBalance("-1")
	assert.Error(t, err)
	_, err = ParseBalance("ten")
	assert.Error(t, err)
}

func TestBalance_AmountRoundTrip(t *testing.T) {
	for _, b := range []Balance{{}, NewBalance(1), NewBalance(1 << 40), MaxBalance()} {
		assert.Equal(t, b, BalanceFromAmount(b.Amount()))
	}
	a := NewBalance(0x0102).Amount()
	assert.Equal(t, byte(0x01), a[30])
	assert.Equal(t, byte(0x02), a[31])
}

func TestBalance_InBalancesPallet(t *testing.T) {
	p := balances.New[AccountID, Balance]()
	p.SetBalance("alice", NewBalance(100))

	require.NoError(t, p.Transfer("alice", "bob", NewBalance(60)))
	assert.Equal(t, NewBalance(40), p.Balance("alice"))
	assert.Equal(t, NewBalance(60), p.Balance("bob"))

	assert.ErrorIs(t, p.Transfer("alice", "bob", NewBalance(41)), balances.ErrInsufficientFunds)

	p.SetBalance("carol", MaxBalance())
	assert.ErrorIs(t, p.Transfer("alice", "carol", NewBalance(1)), balances.ErrBalanceOverflow)
	assert.Equal(t, NewBalance(40), p.Balance("alice"))
}
