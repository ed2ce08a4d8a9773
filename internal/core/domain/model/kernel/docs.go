// Package kernel holds the value objects shared by the lot and order models:
// UUID for order line identity and Date for expiry and order dates.
//
// Both are immutable, compare by value and have an invalid zero value that
// Validate reports.
package kernel
