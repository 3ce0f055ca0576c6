package menu_test

import (
	"strings"
	"testing"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/menu"
	"cafe/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	price, err := kernel.MoneyFromString("3.20")
	require.NoError(t, err)

	t.Run("should create an item with a trimmed name", func(t *testing.T) {
		item, err := menu.NewItem(kernel.NewUUID(), "  Flat white ", price)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, "Flat white", item.Name())
		assert.True(t, item.Price().IsEqual(price))
	})

	t.Run("should require a name", func(t *testing.T) {
		_, err := menu.NewItem(kernel.NewUUID(), "   ", price)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should bound the name length", func(t *testing.T) {
		_, err := menu.NewItem(kernel.NewUUID(), strings.Repeat("a", menu.MaxNameLength+1), price)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should require an id", func(t *testing.T) {
		_, err := menu.NewItem(kernel.UUID{}, "Latte", price)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestItem_Validate(t *testing.T) {
	var item menu.Item

	assert.Equal(t, menu.ErrItemIsNotConstructed, item.Validate())
}
