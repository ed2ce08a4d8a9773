// Package lot models a physically distinct batch of a finished-goods SKU.
//
// A Lot carries its own expiry date and warehouse location. Its available
// quantity never goes negative and only decreases through Deduct; a lot that
// reaches zero stays in the ledger as part of the audit trail.
package lot
