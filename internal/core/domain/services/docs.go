// Package services provides the stateless domain services of the
// fulfillment engine:
//   - FEFOAllocator: plans which lots satisfy a requested quantity, soonest expiry first
//   - PickingListGenerator: projects an allocated order into warehouse pick instructions
//
// Neither service mutates lots or orders. Committing a plan is the job of the
// application layer, which owns the unit of work.
package services
