// Package order provides the Order aggregate of the fulfillment engine and
// the state machine that drives it.
//
// The package includes:
//   - Order: the aggregate root holding channel, customer, priority, dates and lines
//   - Line: one requested SKU and quantity, with the lot allocations committed to it
//   - Allocation: a committed (lot, quantity) pair with the lot's location and expiry
//   - Status: the lifecycle enum with an explicit transition table
//   - StatusChanged: the event recorded on every transition
//
// Key business rules:
//   - Status follows Pending -> Allocated -> Picked -> Shipped and nothing else
//   - Allocation is all or nothing: every line receives exactly its outstanding quantity
//   - Picking can only complete once every line is fully allocated
//   - A shipped order always carries a tracking number
//
// Illegal transitions return *InvalidTransitionError and leave the order
// untouched.
package order
