package order_test

import (
	"strings"
	"testing"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newLine(t *testing.T, qty int, price string) order.Line {
	t.Helper()
	q, err := kernel.NewQuantity(qty)
	require.NoError(t, err)
	p, err := kernel.MoneyFromString(price)
	require.NoError(t, err)
	l, err := order.NewLine(kernel.NewUUID(), q, p)
	require.NoError(t, err)
	return l
}

func newPendingOrder(t *testing.T) (*order.Order, kernel.UUID) {
	t.Helper()
	customer := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), customer, []order.Line{newLine(t, 2, "3.50")}, "", customer, placedAt)
	require.NoError(t, err)
	return o, customer
}

func TestNewOrder(t *testing.T) {
	id := kernel.NewUUID()
	customer := kernel.NewUUID()
	lines := []order.Line{newLine(t, 2, "3.50"), newLine(t, 1, "4.25")}

	t.Run("should create a pending order", func(t *testing.T) {
		o, err := order.NewOrder(id, customer, lines, "no sugar", customer, placedAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.CustomerID().IsEqual(customer))
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "no sugar", o.Note())
		assert.Equal(t, placedAt, o.CreatedAt())
		assert.Equal(t, placedAt, o.UpdatedAt())
		assert.True(t, o.CreatedBy().IsEqual(customer))
		assert.Len(t, o.Lines(), 2)
		assert.Equal(t, "11.25", o.Total().String())
	})

	t.Run("should record a creation event", func(t *testing.T) {
		o, err := order.NewOrder(id, customer, lines, "", customer, placedAt)
		require.NoError(t, err)

		require.Len(t, o.DomainEvents(), 1)
		event, ok := o.DomainEvents()[0].(order.StatusChanged)
		require.True(t, ok)
		assert.Equal(t, order.Unknown, event.From)
		assert.Equal(t, order.Pending, event.To)
		assert.True(t, event.AggregateID().IsEqual(id))
		assert.Equal(t, order.StatusChangedEventName, event.EventName())
	})

	t.Run("should be placed by staff on behalf of a customer", func(t *testing.T) {
		staff := kernel.NewUUID()

		o, err := order.NewOrder(id, customer, lines, "", staff, placedAt)

		require.NoError(t, err)
		assert.True(t, o.CreatedBy().IsEqual(staff))
		assert.True(t, o.CustomerID().IsEqual(customer))
	})

	t.Run("should require lines", func(t *testing.T) {
		o, err := order.NewOrder(id, customer, nil, "", customer, placedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should reject duplicate menu items", func(t *testing.T) {
		l := newLine(t, 1, "2.00")

		_, err := order.NewOrder(id, customer, []order.Line{l, l}, "", customer, placedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "appears more than once")
	})

	t.Run("should reject a long note", func(t *testing.T) {
		_, err := order.NewOrder(id, customer, lines, strings.Repeat("x", order.MaxNoteLength+1), customer, placedAt)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should join every validation failure", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, nil, "", kernel.UUID{}, placedAt)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "customer")
		assert.Contains(t, err.Error(), "items")
	})
}

func TestOrder_LinesAreCopied(t *testing.T) {
	o, _ := newPendingOrder(t)

	lines := o.Lines()
	lines[0] = newLine(t, 9, "9.99")

	assert.Equal(t, 2, o.Lines()[0].Quantity().Int())
}

func TestOrder_Validate(t *testing.T) {
	var zero order.Order
	var nilOrder *order.Order

	assert.Equal(t, order.ErrOrderIsNotConstructed, zero.Validate())
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())
}

func TestOrder_Pay(t *testing.T) {
	t.Run("should move pending to paid", func(t *testing.T) {
		o, _ := newPendingOrder(t)
		staff := kernel.NewUUID()
		paidAt := placedAt.Add(time.Minute)

		require.NoError(t, o.Pay(staff, paidAt))

		assert.Equal(t, order.Paid, o.Status())
		assert.Equal(t, paidAt, o.UpdatedAt())
		assert.True(t, o.UpdatedBy().IsEqual(staff))
		require.Len(t, o.DomainEvents(), 2)
	})

	t.Run("should reject paying twice", func(t *testing.T) {
		o, _ := newPendingOrder(t)
		staff := kernel.NewUUID()
		require.NoError(t, o.Pay(staff, placedAt))

		err := o.Pay(staff, placedAt)

		require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
		assert.Equal(t, order.Paid, o.Status())
	})

	t.Run("should require an actor", func(t *testing.T) {
		o, _ := newPendingOrder(t)

		require.Error(t, o.Pay(kernel.UUID{}, placedAt))
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_Receive(t *testing.T) {
	staff := kernel.NewUUID()

	t.Run("should start delivery of a paid order", func(t *testing.T) {
		o, _ := newPendingOrder(t)
		require.NoError(t, o.Pay(staff, placedAt))

		require.NoError(t, o.StartDelivery(staff, placedAt))

		assert.Equal(t, order.Delivering, o.Status())
	})

	t.Run("should fail a paid order", func(t *testing.T) {
		o, _ := newPendingOrder(t)
		require.NoError(t, o.Pay(staff, placedAt))

		require.NoError(t, o.Fail(staff, placedAt))

		assert.Equal(t, order.Failed, o.Status())
	})

	t.Run("should not receive an unpaid order", func(t *testing.T) {
		o, _ := newPendingOrder(t)

		require.ErrorIs(t, o.StartDelivery(staff, placedAt), errs.ErrTransitionIsInvalid)
		require.ErrorIs(t, o.Fail(staff, placedAt), errs.ErrTransitionIsInvalid)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("failed orders are terminal", func(t *testing.T) {
		o, _ := newPendingOrder(t)
		require.NoError(t, o.Pay(staff, placedAt))
		require.NoError(t, o.Fail(staff, placedAt))

		require.ErrorIs(t, o.Pay(staff, placedAt), errs.ErrTransitionIsInvalid)
		require.ErrorIs(t, o.StartDelivery(staff, placedAt), errs.ErrTransitionIsInvalid)
	})
}

func TestOrder_DomainEvents(t *testing.T) {
	o, _ := newPendingOrder(t)
	staff := kernel.NewUUID()
	require.NoError(t, o.Pay(staff, placedAt))

	events := o.DomainEvents()
	require.Len(t, events, 2)
	last := events[1].(order.StatusChanged)
	assert.Equal(t, order.Pending, last.From)
	assert.Equal(t, order.Paid, last.To)
	assert.True(t, last.ActorID.IsEqual(staff))

	o.ClearDomainEvents()
	assert.Empty(t, o.DomainEvents())
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewUUID()
	customer := kernel.NewUUID()
	lines := []order.Line{newLine(t, 1, "2.00")}

	t.Run("should restore without recording events", func(t *testing.T) {
		o, err := order.RestoreOrder(id, customer, lines, "", order.Paid, placedAt, placedAt, customer, customer)

		require.NoError(t, err)
		assert.Equal(t, order.Paid, o.Status())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should reject an invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(id, customer, lines, "", order.Unknown, placedAt, placedAt, customer, customer)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
