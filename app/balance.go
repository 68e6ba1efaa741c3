package app

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/duylongpro99/rsm/pallets/balances"
	"github.com/duylongpro99/rsm/types"
)

// Balance is a 256-bit unsigned amount. The zero value is zero.
type Balance uint256.Int

var _ = balances.New[AccountID, Balance]

// NewBalance returns a Balance holding v.
func NewBalance(v uint64) Balance {
	return Balance(*uint256.NewInt(v))
}

// MaxBalance returns the largest representable Balance.
func MaxBalance() Balance {
	var z uint256.Int
	z.SetAllOne()
	return Balance(z)
}

// ParseBalance parses a base-10 amount.
func ParseBalance(s string) (Balance, error) {
	z, err := uint256.FromDecimal(s)
	if err != nil {
		return Balance{}, fmt.Errorf("invalid balance %q: %w", s, err)
	}
	return Balance(*z), nil
}

// BalanceFromAmount converts a big-endian wire amount.
func BalanceFromAmount(a types.Amount) Balance {
	var z uint256.Int
	z.SetBytes32(a[:])
	return Balance(z)
}

// Amount returns the big-endian wire form of b.
func (b Balance) Amount() types.Amount {
	return types.Amount(b.int().Bytes32())
}

func (b Balance) CheckedAdd(v Balance) (Balance, bool) {
	var z uint256.Int
	if _, overflow := z.AddOverflow(b.int(), v.int()); overflow {
		return Balance{}, false
	}
	return Balance(z), true
}

func (b Balance) CheckedSub(v Balance) (Balance, bool) {
	var z uint256.Int
	if _, underflow := z.SubOverflow(b.int(), v.int()); underflow {
		return Balance{}, false
	}
	return Balance(z), true
}

func (b Balance) IsZero() bool { return b.int().IsZero() }

// String returns the base-10 representation.
func (b Balance) String() string { return b.int().Dec() }

func (b *Balance) int() *uint256.Int { return (*uint256.Int)(b) }
