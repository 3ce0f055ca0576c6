// Package kernel provides the shared value objects of the cafe domain model.
//
// The package includes:
//   - UUID: identifier for orders, cart lines, menu items and users
//   - Money: a non-negative decimal amount used for menu prices and order totals
//   - Quantity: a strictly positive item count
//
// Values are immutable. Their zero values are invalid and are rejected by Validate,
// so aggregates can detect fields that were never set.
package kernel
