package cart_test

import (
	"testing"

	"cafe/internal/core/domain/model/cart"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(t *testing.T, v int) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantity(v)
	require.NoError(t, err)
	return q
}

func newLine(t *testing.T) *cart.Line {
	t.Helper()
	l, err := cart.NewLine(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), qty(t, 2))
	require.NoError(t, err)
	return l
}

func TestNewLine(t *testing.T) {
	t.Run("should create a live line", func(t *testing.T) {
		l := newLine(t)

		require.NoError(t, l.Validate())
		assert.Equal(t, 2, l.Quantity().Int())
		assert.False(t, l.IsDeleted())
	})

	t.Run("should require every reference", func(t *testing.T) {
		_, err := cart.NewLine(kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(), qty(t, 1))

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should require a quantity", func(t *testing.T) {
		_, err := cart.NewLine(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.Quantity{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestLine_Increase(t *testing.T) {
	l := newLine(t)

	require.NoError(t, l.Increase(qty(t, 3)))
	assert.Equal(t, 5, l.Quantity().Int())

	require.ErrorIs(t, l.Increase(qty(t, kernel.MaxQuantity)), errs.ErrValueIsOutOfRange)
	assert.Equal(t, 5, l.Quantity().Int())
}

func TestLine_ChangeQuantity(t *testing.T) {
	l := newLine(t)

	require.NoError(t, l.ChangeQuantity(qty(t, 7)))
	assert.Equal(t, 7, l.Quantity().Int())
}

func TestLine_Remove(t *testing.T) {
	l := newLine(t)

	l.Remove()
	l.Remove()

	assert.True(t, l.IsDeleted())
	require.ErrorIs(t, l.ChangeQuantity(qty(t, 1)), errs.ErrValueIsInvalid)
	require.ErrorIs(t, l.Increase(qty(t, 1)), errs.ErrValueIsInvalid)
}

func TestRestoreLine_KeepsDeletedFlag(t *testing.T) {
	l, err := cart.RestoreLine(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), qty(t, 1), true)

	require.NoError(t, err)
	assert.True(t, l.IsDeleted())
}
