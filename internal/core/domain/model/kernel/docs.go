// Package kernel provides the value objects shared by the freight domain model.
//
// The package includes:
//   - UUID: identifier for amendments, shipments, quotes and actors
//   - Money: non-negative cent-precision amount backed by shopspring/decimal
//
// Zero values of both types are invalid and are rejected by Validate.
package kernel
