// Package services provides domain services that span more than one
// aggregate of the amendment workflow.
//
// The package includes:
//   - TransitionAuthority: the single place where a requested amendment
//     transition is checked against the role capability table, shipment
//     ownership and the status table before it is applied
//
// Domain services are stateless and never touch persistence; handlers load
// the aggregates, call the service and write the result.
package services
