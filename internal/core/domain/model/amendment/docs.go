// Package amendment provides the Amendment aggregate: a change to an
// in-progress shipment negotiated between the client who raised it, the
// admin who arbitrates it and the vendor who fulfils the shipment.
//
// The package includes:
//   - Amendment: the aggregate root holding reason, cost/delay impact and status
//   - Status: the protocol state machine
//   - Action: the closed set of transition requests
//   - HistoryEntry: one audited transition
//
// Key business rules:
//   - Status only moves along requested -> admin_review -> client_review -> accepted,
//     with rejected reachable from requested and client_review
//   - accepted and rejected are terminal
//   - extra cost and delay are present if and only if the status is accepted
//   - a rejected transition leaves the aggregate unchanged
package amendment
