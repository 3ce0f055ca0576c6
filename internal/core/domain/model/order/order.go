package order

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"
)

// MaxNoteLength bounds the free-text note a customer can attach to an order.
const MaxNoteLength = 500

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of a customer's purchase. It owns the order lines
// and is the only place where the status may change.
//
// Order follows these invariants:
//   - Must have valid order and customer identifiers
//   - Must contain at least one line and no two lines for the same menu item
//   - Starts in Pending and moves only through Pay, StartDelivery and Fail
//   - Every status change records the acting user and a StatusChanged event
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	lines      []Line
	note       string
	status     Status

	createdAt time.Time
	updatedAt time.Time
	createdBy kernel.UUID
	updatedBy kernel.UUID

	events        []kernel.DomainEvent
	isConstructed bool
}

// NewOrder places a new order in Pending status.
//
// Parameters:
//   - id: identifier for the order
//   - customerID: the customer the order belongs to
//   - lines: ordered menu items, at least one
//   - note: optional free text, at most MaxNoteLength characters
//   - actorID: the user placing the order (customer, staff or admin)
//   - now: creation time
//
// A StatusChanged event from Unknown to Pending is recorded.
func NewOrder(
	id, customerID kernel.UUID,
	lines []Line,
	note string,
	actorID kernel.UUID,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		createdBy:     actorID,
		updatedBy:     actorID,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setLines(lines),
		o.setNote(note),
		actorID.Validate(),
	); err != nil {
		return nil, err
	}

	o.record(Unknown, Pending, actorID, now)
	return o, nil
}

// RestoreOrder rebuilds an order loaded from persistence. No event is recorded.
func RestoreOrder(
	id, customerID kernel.UUID,
	lines []Line,
	note string,
	status Status,
	createdAt, updatedAt time.Time,
	createdBy, updatedBy kernel.UUID,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		createdBy:     createdBy,
		updatedBy:     updatedBy,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setLines(lines),
		o.setNote(note),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID         { return o.id }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) Note() string            { return o.note }
func (o *Order) Status() Status          { return o.status }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }
func (o *Order) CreatedBy() kernel.UUID  { return o.createdBy }
func (o *Order) UpdatedBy() kernel.UUID  { return o.updatedBy }

// Lines returns a copy of the order lines.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Total returns the sum of all line subtotals.
func (o *Order) Total() kernel.Money {
	total := kernel.ZeroMoney()
	for _, l := range o.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Pay marks a Pending order as Paid.
func (o *Order) Pay(actorID kernel.UUID, now time.Time) error {
	return o.change(Status.Pay, actorID, now)
}

// StartDelivery moves a Paid order to Delivering once the warehouse has supplied it.
func (o *Order) StartDelivery(actorID kernel.UUID, now time.Time) error {
	return o.change(Status.Deliver, actorID, now)
}

// Fail moves a Paid order to the terminal Failed status. It is the compensating
// step taken when the warehouse check reports a shortage.
func (o *Order) Fail(actorID kernel.UUID, now time.Time) error {
	return o.change(Status.Fail, actorID, now)
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	return o.events
}

// ClearDomainEvents drops recorded events once they have been stored.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) change(next func(Status) (Status, error), actorID kernel.UUID, now time.Time) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	newStatus, err := next(o.status)
	if err != nil {
		return err
	}

	previous := o.status
	o.status = newStatus
	o.updatedAt = now
	o.updatedBy = actorID
	o.record(previous, newStatus, actorID, now)
	return nil
}

func (o *Order) record(from, to Status, actorID kernel.UUID, now time.Time) {
	o.events = append(o.events, StatusChanged{
		ID:      kernel.NewUUID(),
		OrderID: o.id,
		From:    from,
		To:      to,
		ActorID: actorID,
		At:      now,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	o.customerID = customerID
	return nil
}

// setLines requires at least one line and rejects repeated menu items.
func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, l := range lines {
		if _, dup := seen[l.menuItemID]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"items are invalid",
				fmt.Errorf("menu item %s appears more than once", l.menuItemID),
			)
		}
		seen[l.menuItemID] = struct{}{}
	}

	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setNote(note string) error {
	if n := utf8.RuneCountInString(note); n > MaxNoteLength {
		return errs.NewValueIsOutOfRangeError("note length", n, 0, MaxNoteLength)
	}
	o.note = note
	return nil
}
