// Package order provides the Order aggregate of the café: what a customer bought
// and where the purchase is in its lifecycle.
//
// The package includes:
//   - Order: the aggregate root with its lines, audit fields and recorded events
//   - Line: one ordered menu item with the price captured at order time
//   - Status: the state machine Pending -> Paid -> Delivering | Failed
//   - StatusChanged: the event recorded for creation and every transition
//
// Key business rules:
//   - New orders always start in Pending
//   - Only Pending orders can be paid, only Paid orders can be received
//   - Receiving ends in Delivering when the warehouse supplies every line and
//     in Failed otherwise; both are terminal
//   - Status never changes except through Pay, StartDelivery and Fail
package order
