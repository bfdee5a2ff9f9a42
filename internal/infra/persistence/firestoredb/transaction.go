package firestoredb

import (
	"context"

	"pixelstore/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

// firestoreTransactionManager implements repository.TransactionManager on top
// of Firestore's optimistic transactions.
type firestoreTransactionManager struct {
	client *Client
}

// NewTransactionManager is the constructor for firestoreTransactionManager.
func NewTransactionManager(client *Client) repository.TransactionManager {
	return &firestoreTransactionManager{client: client}
}

// Execute runs fn inside a single Firestore transaction. Repositories handed
// out by the factory are bound to that transaction, so every read contends
// with concurrent commits and fn may re-run when a conflict is detected.
// Within one attempt all reads must happen before the first write.
func (m *firestoreTransactionManager) Execute(ctx context.Context, fn func(factory repository.RepositoryFactory) error) error {
	err := m.client.fs.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		return fn(&firestoreRepositoryFactory{client: m.client, tx: tx})
	})
	if err != nil {
		return errors.Wrap(err, "transaction failed")
	}

	return nil
}

// firestoreRepositoryFactory hands out repositories bound to one transaction.
type firestoreRepositoryFactory struct {
	client *Client
	tx     *firestore.Transaction
}

func (f *firestoreRepositoryFactory) NewProductRepository() repository.ProductRepository {
	return &productRepository{client: f.client, tx: f.tx}
}

func (f *firestoreRepositoryFactory) NewOrderRepository() repository.OrderRepository {
	return &orderRepository{client: f.client, tx: f.tx}
}

func (f *firestoreRepositoryFactory) NewReviewRepository() repository.ReviewRepository {
	return &reviewRepository{client: f.client, tx: f.tx}
}
