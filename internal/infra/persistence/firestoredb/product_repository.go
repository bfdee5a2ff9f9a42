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

// productRepository implements repository.ProductRepository. With tx set it
// is bound to a single Firestore transaction.
type productRepository struct {
	client *Client
	tx     *firestore.Transaction
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(client *Client) repository.ProductRepository {
	return &productRepository{client: client}
}

// NewProductWatcher exposes the same repository as a snapshot watcher.
func NewProductWatcher(client *Client) repository.ProductWatcher {
	return &productRepository{client: client}
}

// CreateProduct persists a new product and assigns its generated ID.
func (repo *productRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	doc := repo.client.collection(collectionProducts).NewDoc()
	productM := model.FromProductDomain(product)

	if repo.tx != nil {
		if err := repo.tx.Create(doc, productM); err != nil {
			return errors.Wrap(err, "failed to create product")
		}
	} else {
		if _, err := doc.Create(ctx, productM); err != nil {
			return errors.Wrap(err, "failed to create product")
		}
	}

	// The server timestamp lands on commit; mirror it client-side so the
	// caller can display the record immediately.
	product.ID = doc.ID
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	return nil
}

// FindProductByID retrieves a product by its ID.
func (repo *productRepository) FindProductByID(ctx context.Context, id string) (*entity.Product, error) {
	doc := repo.client.collection(collectionProducts).Doc(id)

	snap, err := repo.getDoc(ctx, doc)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	var productM model.ProductModel
	if err := snap.DataTo(&productM); err != nil {
		return nil, errors.Wrap(err, "failed to decode product document")
	}

	return productM.ToProductDomain(snap.Ref.ID)
}

// ListProducts retrieves the full catalog.
func (repo *productRepository) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	query := repo.client.collection(collectionProducts).OrderBy("createdAt", firestore.Desc)

	docs := repo.documents(ctx, query)
	defer docs.Stop()

	var products []*entity.Product
	for {
		snap, err := docs.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list products")
		}

		var productM model.ProductModel
		if err := snap.DataTo(&productM); err != nil {
			return nil, errors.Wrap(err, "failed to decode product document")
		}

		product, err := productM.ToProductDomain(snap.Ref.ID)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// UpdateProduct overwrites a product's editable fields. createdAt is left
// untouched; updatedAt advances to the server time.
func (repo *productRepository) UpdateProduct(ctx context.Context, product *entity.Product) error {
	doc := repo.client.collection(collectionProducts).Doc(product.ID)
	updates := []firestore.Update{
		{Path: "name", Value: product.Name},
		{Path: "price", Value: product.Price.String()},
		{Path: "stock", Value: product.Stock},
		{Path: "description", Value: product.Description},
		{Path: "imageUrl", Value: product.ImageURL},
		{Path: "category", Value: product.Category},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}

	var err error
	if repo.tx != nil {
		err = repo.tx.Update(doc, updates)
	} else {
		_, err = doc.Update(ctx, updates)
	}
	if err != nil {
		if isNotFound(err) {
			return repository.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to update product")
	}

	return nil
}

// DeleteProduct removes a product by its ID.
func (repo *productRepository) DeleteProduct(ctx context.Context, id string) error {
	doc := repo.client.collection(collectionProducts).Doc(id)

	var err error
	if repo.tx != nil {
		err = repo.tx.Delete(doc)
	} else {
		_, err = doc.Delete(ctx)
	}
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

// ReserveStock decrements stock for every adjustment after verifying no
// product would go negative. Decrements use the server-side Increment
// primitive, never a read-modify-write of a fetched value; the verification
// reads make the transaction contend with concurrent checkouts so stock can
// never be driven below zero.
func (repo *productRepository) ReserveStock(ctx context.Context, adjustments []repository.StockAdjustment) error {
	if repo.tx != nil {
		return repo.reserveStockInTx(repo.tx, adjustments)
	}

	return repo.client.fs.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		return repo.reserveStockInTx(tx, adjustments)
	})
}

func (repo *productRepository) reserveStockInTx(tx *firestore.Transaction, adjustments []repository.StockAdjustment) error {
	// All reads must precede all writes inside a Firestore transaction.
	refs := make([]*firestore.DocumentRef, 0, len(adjustments))
	for _, adj := range adjustments {
		refs = append(refs, repo.client.collection(collectionProducts).Doc(adj.ProductID))
	}

	for i, adj := range adjustments {
		snap, err := tx.Get(refs[i])
		if err != nil {
			if isNotFound(err) {
				return repository.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to read product for stock reservation")
		}

		var productM model.ProductModel
		if err := snap.DataTo(&productM); err != nil {
			return errors.Wrap(err, "failed to decode product document")
		}
		if productM.Stock < adj.Quantity {
			return repository.ErrInsufficientStock
		}
	}

	for i, adj := range adjustments {
		update := []firestore.Update{{Path: "stock", Value: firestore.Increment(int64(-adj.Quantity))}}
		if err := tx.Update(refs[i], update); err != nil {
			return errors.Wrap(err, "failed to decrement stock")
		}
	}

	return nil
}

// RestoreStock increments stock for every adjustment, reversing an earlier
// reservation. Products deleted from the catalog since the order was placed
// are skipped; their inventory no longer exists to restore.
func (repo *productRepository) RestoreStock(ctx context.Context, adjustments []repository.StockAdjustment) error {
	if repo.tx != nil {
		return repo.restoreStockInTx(repo.tx, adjustments)
	}

	return repo.client.fs.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		return repo.restoreStockInTx(tx, adjustments)
	})
}

func (repo *productRepository) restoreStockInTx(tx *firestore.Transaction, adjustments []repository.StockAdjustment) error {
	refs := make([]*firestore.DocumentRef, 0, len(adjustments))
	exists := make([]bool, len(adjustments))
	for i, adj := range adjustments {
		ref := repo.client.collection(collectionProducts).Doc(adj.ProductID)
		refs = append(refs, ref)

		_, err := tx.Get(ref)
		switch {
		case err == nil:
			exists[i] = true
		case isNotFound(err):
			exists[i] = false
		default:
			return errors.Wrap(err, "failed to read product for stock restore")
		}
	}

	for i, adj := range adjustments {
		if !exists[i] {
			continue
		}
		update := []firestore.Update{{Path: "stock", Value: firestore.Increment(int64(adj.Quantity))}}
		if err := tx.Update(refs[i], update); err != nil {
			return errors.Wrap(err, "failed to restore stock")
		}
	}

	return nil
}

// WatchProducts subscribes to the catalog collection and pushes the full
// snapshot to handler on every committed change.
func (repo *productRepository) WatchProducts(ctx context.Context, handler func(products []*entity.Product)) (func(), error) {
	if repo.tx != nil {
		return nil, errors.New("watch is not available inside a transaction")
	}

	watchCtx, cancel := context.WithCancel(ctx)
	snapshots := repo.client.collection(collectionProducts).Snapshots(watchCtx)

	go func() {
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				// Cancellation or a terminal stream error ends the watch;
				// the mirror keeps serving its last snapshot.
				return
			}

			var products []*entity.Product
			docs := snap.Documents
			for {
				docSnap, err := docs.Next()
				if errors.Is(err, iterator.Done) {
					break
				}
				if err != nil {
					return
				}

				var productM model.ProductModel
				if err := docSnap.DataTo(&productM); err != nil {
					continue
				}
				product, err := productM.ToProductDomain(docSnap.Ref.ID)
				if err != nil {
					continue
				}
				products = append(products, product)
			}

			handler(products)
		}
	}()

	return cancel, nil
}

func (repo *productRepository) getDoc(ctx context.Context, doc *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	if repo.tx != nil {
		return repo.tx.Get(doc)
	}

	return doc.Get(ctx)
}

func (repo *productRepository) documents(ctx context.Context, query firestore.Query) *firestore.DocumentIterator {
	if repo.tx != nil {
		return repo.tx.Documents(query)
	}

	return query.Documents(ctx)
}
