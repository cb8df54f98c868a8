package kernel_test

import (
	"testing"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money from non-negative decimal", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromInt(500))

		require.NoError(t, err)
		assert.Equal(t, "500", m.String())
	})

	t.Run("should accept zero", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.Zero)

		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("should parse decimal string", func(t *testing.T) {
		m, err := kernel.NewMoneyFromString("123.45")

		require.NoError(t, err)
		assert.Equal(t, "123.45", m.String())
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := kernel.NewMoneyFromString("not money")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject negative string", func(t *testing.T) {
		_, err := kernel.NewMoneyFromString("-0.01")

		require.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	hundred := kernel.MustNewMoney(decimal.NewFromInt(100))
	thirty := kernel.MustNewMoney(decimal.NewFromInt(30))

	t.Run("add", func(t *testing.T) {
		assert.Equal(t, "130", hundred.Add(thirty).String())
	})

	t.Run("sub", func(t *testing.T) {
		diff, err := hundred.Sub(thirty)
		require.NoError(t, err)
		assert.Equal(t, "70", diff.String())
	})

	t.Run("sub below zero fails", func(t *testing.T) {
		_, err := thirty.Sub(hundred)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("mul", func(t *testing.T) {
		assert.Equal(t, "300", hundred.Mul(3).String())
	})

	t.Run("equality is numeric", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromString("10.0")
		b, _ := kernel.NewMoneyFromString("10")
		assert.True(t, a.IsEqual(b))
	})

	t.Run("zero value is valid zero", func(t *testing.T) {
		var m kernel.Money
		assert.True(t, m.IsZero())
		assert.Equal(t, "0", m.Add(kernel.ZeroMoney()).String())
	})
}
