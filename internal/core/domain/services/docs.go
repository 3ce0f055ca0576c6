// Package services provides domain services that span more than one aggregate
// of the café.
//
// The package includes:
//   - WarehouseChecker: decides whether the warehouse can supply every line of
//     a paid order and reserves the stock when it can
//
// The checker returns an Availability value rather than an error: a shortage is
// an expected business outcome that the caller compensates for.
package services
