package kernel

import "cafe/internal/pkg/errs"

// MaxQuantity bounds a single order or cart line.
const MaxQuantity = 100

// Quantity is an item count in [1, MaxQuantity].
type Quantity struct {
	value int
}

// NewQuantity rejects values outside [1, MaxQuantity].
func NewQuantity(value int) (Quantity, error) {
	if value < 1 || value > MaxQuantity {
		return Quantity{}, errs.NewValueIsOutOfRangeError("quantity", value, 1, MaxQuantity)
	}
	return Quantity{value: value}, nil
}

// Int returns the count.
func (q Quantity) Int() int {
	return q.value
}

// Add sums two quantities, failing when the result exceeds MaxQuantity.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	return NewQuantity(q.value + other.value)
}

// Validate rejects the zero value.
func (q Quantity) Validate() error {
	if q.value < 1 {
		return errs.NewValueIsRequiredError("quantity")
	}
	return nil
}
