package order

import (
	"fmt"
	"strings"

	"cafe/internal/pkg/errs"
)

// Status represents the lifecycle state of a café order.
//
// State transitions:
//
//	Pending ──pay──> Paid ──receive──┬──> Delivering
//	                                 │
//	                                 └──> Failed   (warehouse check failed)
//
// Delivering and Failed are terminal. Each transition is reachable only from
// the state drawn before it, so paying twice or receiving an unpaid order is
// rejected with a TransitionIsInvalidError.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly created order.
	Pending

	// Paid indicates the customer has paid at the counter.
	Paid

	// Delivering indicates the warehouse supplied every line and the order is on its way.
	Delivering

	// Failed indicates the warehouse could not supply the order when it was received.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Paid:       "PAID",
		Delivering: "DELIVERING",
		Failed:     "FAILED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "PENDING",
		Paid:       "PAID",
		Delivering: "DELIVERING",
		Failed:     "FAILED",
	}
}

// ParseStatus converts a status name (case-insensitive) into a Status.
// Unknown names, including "UNKNOWN", are rejected.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is one of Pending, Paid, Delivering or Failed.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-case status name used on the wire, or "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// MarshalText encodes the status name for JSON payloads.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivering || s == Failed
}

// Pay transitions Pending to Paid.
//
// Returns:
//   - (Paid, nil) on valid transition
//   - (0, error) for every other source status, including Paid itself
func (s Status) Pay() (Status, error) {
	return s.transition(Pending, Paid)
}

// Deliver transitions Paid to Delivering. It is the success branch of receive.
func (s Status) Deliver() (Status, error) {
	return s.transition(Paid, Delivering)
}

// Fail transitions Paid to Failed. It is the compensation branch of receive,
// taken when the warehouse cannot supply the order.
func (s Status) Fail() (Status, error) {
	return s.transition(Paid, Failed)
}

func (s Status) transition(from, to Status) (Status, error) {
	if s != from {
		return 0, errs.NewTransitionIsInvalidErrorWithCause(
			s.String(),
			to.String(),
			fmt.Errorf("only %s orders can become %s", from, to),
		)
	}
	return to, nil
}
