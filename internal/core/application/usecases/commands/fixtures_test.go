package commands_test

import (
	"testing"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/menu"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/domain/model/warehouse"

	"github.com/stretchr/testify/require"
)

func quantity(t *testing.T, v int) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantity(v)
	require.NoError(t, err)
	return q
}

func money(t *testing.T, v string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(v)
	require.NoError(t, err)
	return m
}

func menuItem(t *testing.T, name, price string) *menu.Item {
	t.Helper()
	item, err := menu.NewItem(kernel.NewUUID(), name, money(t, price))
	require.NoError(t, err)
	return item
}

func stockOf(t *testing.T, item *menu.Item, available int) *warehouse.Stock {
	t.Helper()
	s, err := warehouse.NewStock(item.ID(), available)
	require.NoError(t, err)
	return s
}

// orderFor places an order for two units of each item, paid when paid is true.
func orderFor(t *testing.T, paid bool, items ...*menu.Item) *order.Order {
	t.Helper()
	lines := make([]order.Line, 0, len(items))
	for _, item := range items {
		l, err := order.NewLine(item.ID(), quantity(t, 2), item.Price())
		require.NoError(t, err)
		lines = append(lines, l)
	}
	customer := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), customer, lines, "", customer, time.Now())
	require.NoError(t, err)
	if paid {
		require.NoError(t, o.Pay(kernel.NewUUID(), time.Now()))
	}
	return o
}
