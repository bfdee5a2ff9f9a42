package impl

import (
	"context"
	"fmt"
	"sync"

	"pixelstore/internal/domain/entity"
	"pixelstore/internal/domain/repository"
	"pixelstore/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
)

// In-memory fakes for the repository and service interfaces. The transaction
// manager snapshots the fakes before running the closure and restores them on
// error, matching the all-or-nothing behaviour of the real store.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	nextID   int
	failWith error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) CreateProduct(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.nextID++
	product.ID = fmt.Sprintf("p-%d", r.nextID)
	copied := *product
	r.products[product.ID] = &copied

	return nil
}

func (r *fakeProductRepo) FindProductByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copied := *product

	return &copied, nil
}

func (r *fakeProductRepo) ListProducts(_ context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	products := make([]*entity.Product, 0, len(r.products))
	for _, product := range r.products {
		copied := *product
		products = append(products, &copied)
	}

	return products, nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	copied := *product
	r.products[product.ID] = &copied

	return nil
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)

	return nil
}

func (r *fakeProductRepo) ReserveStock(_ context.Context, adjustments []repository.StockAdjustment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, adj := range adjustments {
		product, ok := r.products[adj.ProductID]
		if !ok {
			return repository.ErrProductNotFound
		}
		if product.Stock < adj.Quantity {
			return repository.ErrInsufficientStock
		}
	}
	for _, adj := range adjustments {
		r.products[adj.ProductID].Stock -= adj.Quantity
	}

	return nil
}

func (r *fakeProductRepo) RestoreStock(_ context.Context, adjustments []repository.StockAdjustment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, adj := range adjustments {
		if product, ok := r.products[adj.ProductID]; ok {
			product.Stock += adj.Quantity
		}
	}

	return nil
}

func (r *fakeProductRepo) stockOf(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.products[id].Stock
}

func (r *fakeProductRepo) snapshot() map[string]*entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*entity.Product, len(r.products))
	for id, product := range r.products {
		copied := *product
		snap[id] = &copied
	}

	return snap
}

func (r *fakeProductRepo) restore(snap map[string]*entity.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = snap
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.Order
	nextID int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	order.ID = fmt.Sprintf("o-%d", r.nextID)
	copied := *order
	r.orders[order.ID] = &copied

	return nil
}

func (r *fakeOrderRepo) FindOrderByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order

	return &copied, nil
}

func (r *fakeOrderRepo) FindOrderByNumber(_ context.Context, number string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.Number == number {
			copied := *order

			return &copied, nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListOrders(_ context.Context) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders := make([]*entity.Order, 0, len(r.orders))
	for _, order := range r.orders {
		copied := *order
		orders = append(orders, &copied)
	}

	return orders, nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(_ context.Context, id string, status entity.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.Status = status

	return nil
}

func (r *fakeOrderRepo) DeleteOrder(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)

	return nil
}

func (r *fakeOrderRepo) snapshot() map[string]*entity.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*entity.Order, len(r.orders))
	for id, order := range r.orders {
		copied := *order
		snap[id] = &copied
	}

	return snap
}

func (r *fakeOrderRepo) restore(snap map[string]*entity.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = snap
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*entity.Review // keyed by order number
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*entity.Review)}
}

func (r *fakeReviewRepo) CreateReview(_ context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.OrderNumber]; ok {
		return repository.ErrDuplicateReview
	}
	review.ID = review.OrderNumber
	copied := *review
	r.reviews[review.OrderNumber] = &copied

	return nil
}

func (r *fakeReviewRepo) FindReviewByOrderNumber(_ context.Context, orderNumber string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[orderNumber]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}
	copied := *review

	return &copied, nil
}

func (r *fakeReviewRepo) ListReviews(_ context.Context) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reviews := make([]*entity.Review, 0, len(r.reviews))
	for _, review := range r.reviews {
		copied := *review
		reviews = append(reviews, &copied)
	}

	return reviews, nil
}

func (r *fakeReviewRepo) DeleteReview(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reviews, id)

	return nil
}

func (r *fakeReviewRepo) snapshot() map[string]*entity.Review {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*entity.Review, len(r.reviews))
	for id, review := range r.reviews {
		copied := *review
		snap[id] = &copied
	}

	return snap
}

func (r *fakeReviewRepo) restore(snap map[string]*entity.Review) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = snap
}

// fakeTxManager runs the closure against the shared fakes and rolls every
// repository back when it fails.
type fakeTxManager struct {
	products *fakeProductRepo
	orders   *fakeOrderRepo
	reviews  *fakeReviewRepo

	lastCtx context.Context
}

func (m *fakeTxManager) Execute(ctx context.Context, fn func(factory repository.RepositoryFactory) error) error {
	m.lastCtx = ctx
	productSnap := m.products.snapshot()
	orderSnap := m.orders.snapshot()
	reviewSnap := m.reviews.snapshot()

	if err := fn(m); err != nil {
		m.products.restore(productSnap)
		m.orders.restore(orderSnap)
		m.reviews.restore(reviewSnap)

		return err
	}

	return nil
}

func (m *fakeTxManager) NewProductRepository() repository.ProductRepository { return m.products }
func (m *fakeTxManager) NewOrderRepository() repository.OrderRepository    { return m.orders }
func (m *fakeTxManager) NewReviewRepository() repository.ReviewRepository  { return m.reviews }

type fakePublisher struct {
	mu     sync.Mutex
	events []*service.OrderEvent
	err    error
}

func (p *fakePublisher) PublishOrderEvent(_ context.Context, event *service.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)

	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) published() []*service.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.events
}

type fakeQRCodeService struct {
	err error
}

func (s *fakeQRCodeService) GeneratePaymentQR(link string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}

	return []byte("png:" + link), nil
}

type fakeCatalogMirror struct {
	products []*entity.Product
	ceilings entity.StockCeilings
	ready    bool
}

func (m *fakeCatalogMirror) Products() ([]*entity.Product, bool) {
	return m.products, m.ready
}

func (m *fakeCatalogMirror) StockCeilings() (entity.StockCeilings, bool) {
	return m.ceilings, m.ready
}

type fakeOrderMirror struct {
	orders []*entity.Order
	ready  bool
}

func (m *fakeOrderMirror) Orders() ([]*entity.Order, bool) {
	return m.orders, m.ready
}

type fakeImageStore struct {
	saved map[string][]byte
	err   error
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{saved: make(map[string][]byte)}
}

func (s *fakeImageStore) SaveImage(_ context.Context, filename, _ string, content []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved[filename] = content

	return "https://images.example.com/" + filename, nil
}

func (s *fakeImageStore) Close() error { return nil }

type fakePasswordHasher struct {
	valid string
}

func (h *fakePasswordHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *fakePasswordHasher) Check(password, _ string) bool {
	return password == h.valid
}

type fakeTokenService struct {
	err error
}

func (s *fakeTokenService) GenerateAdminToken() (string, error) {
	if s.err != nil {
		return "", s.err
	}

	return "admin-token", nil
}

func (s *fakeTokenService) ValidateToken(string) (*jwt.Token, error) {
	return nil, nil
}
