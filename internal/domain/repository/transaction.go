package repository

import "context"

// TransactionManager defines the interface for running a set of store writes
// as one atomic unit. Order placement (create order + decrement stock) and
// order deletion (delete order + restore stock) are the two flows that rely
// on it: all writes in the transaction commit together or none do.
type TransactionManager interface {
	// Execute runs fn within one store transaction. If fn returns an error
	// nothing is committed. Repository instances obtained from the factory
	// are bound to that transaction; the store may re-run fn on contention,
	// so fn must be side-effect free outside the repositories.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to one transaction.
type RepositoryFactory interface {
	// NewProductRepository returns a ProductRepository bound to the current transaction.
	NewProductRepository() ProductRepository

	// NewOrderRepository returns an OrderRepository bound to the current transaction.
	NewOrderRepository() OrderRepository

	// NewReviewRepository returns a ReviewRepository bound to the current transaction.
	NewReviewRepository() ReviewRepository
}
