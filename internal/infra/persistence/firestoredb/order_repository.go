package firestoredb

import (
	"context"
	"time"

	"pixelstore/internal/domain/entity"
	"pixelstore/internal/domain/repository"
	"pixelstore/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

// orderRepository implements repository.OrderRepository. With tx set it is
// bound to a single Firestore transaction.
type orderRepository struct {
	client *Client
	tx     *firestore.Transaction
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(client *Client) repository.OrderRepository {
	return &orderRepository{client: client}
}

// NewOrderWatcher exposes the same repository as a snapshot watcher.
func NewOrderWatcher(client *Client) repository.OrderWatcher {
	return &orderRepository{client: client}
}

// CreateOrder persists a new order and assigns its generated ID.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	doc := repo.client.collection(collectionOrders).NewDoc()
	orderM := model.FromOrderDomain(order)

	if repo.tx != nil {
		if err := repo.tx.Create(doc, orderM); err != nil {
			return errors.Wrap(err, "failed to create order")
		}
	} else {
		if _, err := doc.Create(ctx, orderM); err != nil {
			return errors.Wrap(err, "failed to create order")
		}
	}

	order.ID = doc.ID
	order.CreatedAt = time.Now()

	return nil
}

// FindOrderByID retrieves an order by its document ID.
func (repo *orderRepository) FindOrderByID(ctx context.Context, id string) (*entity.Order, error) {
	doc := repo.client.collection(collectionOrders).Doc(id)

	snap, err := repo.getDoc(ctx, doc)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	var orderM model.OrderModel
	if err := snap.DataTo(&orderM); err != nil {
		return nil, errors.Wrap(err, "failed to decode order document")
	}

	return orderM.ToOrderDomain(snap.Ref.ID)
}

// FindOrderByNumber retrieves an order by its customer-facing number.
func (repo *orderRepository) FindOrderByNumber(ctx context.Context, number string) (*entity.Order, error) {
	query := repo.client.collection(collectionOrders).
		Where("number", "==", number).
		Limit(1)

	docs := repo.documents(ctx, query)
	defer docs.Stop()

	snap, err := docs.Next()
	if errors.Is(err, iterator.Done) {
		return nil, repository.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order by number")
	}

	var orderM model.OrderModel
	if err := snap.DataTo(&orderM); err != nil {
		return nil, errors.Wrap(err, "failed to decode order document")
	}

	return orderM.ToOrderDomain(snap.Ref.ID)
}

// ListOrders retrieves all orders, newest first.
func (repo *orderRepository) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	query := repo.client.collection(collectionOrders).OrderBy("createdAt", firestore.Desc)

	docs := repo.documents(ctx, query)
	defer docs.Stop()

	var orders []*entity.Order
	for {
		snap, err := docs.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list orders")
		}

		var orderM model.OrderModel
		if err := snap.DataTo(&orderM); err != nil {
			return nil, errors.Wrap(err, "failed to decode order document")
		}

		order, err := orderM.ToOrderDomain(snap.Ref.ID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// UpdateOrderStatus sets the status field only; every other order field is
// immutable once the order exists.
func (repo *orderRepository) UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	doc := repo.client.collection(collectionOrders).Doc(id)
	updates := []firestore.Update{{Path: "status", Value: string(status)}}

	var err error
	if repo.tx != nil {
		err = repo.tx.Update(doc, updates)
	} else {
		_, err = doc.Update(ctx, updates)
	}
	if err != nil {
		if isNotFound(err) {
			return repository.ErrOrderNotFound
		}

		return errors.Wrap(err, "failed to update order status")
	}

	return nil
}

// DeleteOrder removes an order by its document ID.
func (repo *orderRepository) DeleteOrder(ctx context.Context, id string) error {
	doc := repo.client.collection(collectionOrders).Doc(id)

	var err error
	if repo.tx != nil {
		err = repo.tx.Delete(doc)
	} else {
		_, err = doc.Delete(ctx)
	}
	if err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	return nil
}

// WatchOrders subscribes to the orders collection and pushes the full
// snapshot to handler on every committed change.
func (repo *orderRepository) WatchOrders(ctx context.Context, handler func(orders []*entity.Order)) (func(), error) {
	if repo.tx != nil {
		return nil, errors.New("watch is not available inside a transaction")
	}

	watchCtx, cancel := context.WithCancel(ctx)
	snapshots := repo.client.collection(collectionOrders).
		OrderBy("createdAt", firestore.Desc).
		Snapshots(watchCtx)

	go func() {
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				return
			}

			var orders []*entity.Order
			docs := snap.Documents
			for {
				docSnap, err := docs.Next()
				if errors.Is(err, iterator.Done) {
					break
				}
				if err != nil {
					return
				}

				var orderM model.OrderModel
				if err := docSnap.DataTo(&orderM); err != nil {
					continue
				}
				order, err := orderM.ToOrderDomain(docSnap.Ref.ID)
				if err != nil {
					continue
				}
				orders = append(orders, order)
			}

			handler(orders)
		}
	}()

	return cancel, nil
}

func (repo *orderRepository) getDoc(ctx context.Context, doc *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	if repo.tx != nil {
		return repo.tx.Get(doc)
	}

	return doc.Get(ctx)
}

func (repo *orderRepository) documents(ctx context.Context, query firestore.Query) *firestore.DocumentIterator {
	if repo.tx != nil {
		return repo.tx.Documents(query)
	}

	return query.Documents(ctx)
}
