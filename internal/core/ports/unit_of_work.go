package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary spanning orders and
// the stock ledger. Client code must explicitly manage the transaction
// lifecycle. Repositories obtained before Begin write immediately.
//
// Once Commit succeeds, the status changes of every order written through
// the unit of work are handed to the EventPublisher it was created with.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// StockLedger returns a StockLedger bound to the current transaction.
	StockLedger() StockLedger
}
