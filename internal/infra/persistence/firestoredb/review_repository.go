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

// reviewRepository implements repository.ReviewRepository. With tx set it is
// bound to a single Firestore transaction.
type reviewRepository struct {
	client *Client
	tx     *firestore.Transaction
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(client *Client) repository.ReviewRepository {
	return &reviewRepository{client: client}
}

// CreateReview persists a new review. The document ID is derived from the
// order number, so a second review for the same order fails with
// ErrDuplicateReview at write time regardless of interleaving.
func (repo *reviewRepository) CreateReview(ctx context.Context, review *entity.Review) error {
	doc := repo.client.collection(collectionReviews).Doc(review.OrderNumber)
	reviewM := model.FromReviewDomain(review)

	var err error
	if repo.tx != nil {
		err = repo.tx.Create(doc, reviewM)
	} else {
		_, err = doc.Create(ctx, reviewM)
	}
	if err != nil {
		if isAlreadyExists(err) {
			return repository.ErrDuplicateReview
		}

		return errors.Wrap(err, "failed to create review")
	}

	review.ID = doc.ID
	review.CreatedAt = time.Now()

	return nil
}

// FindReviewByOrderNumber retrieves the review submitted for an order.
func (repo *reviewRepository) FindReviewByOrderNumber(ctx context.Context, orderNumber string) (*entity.Review, error) {
	doc := repo.client.collection(collectionReviews).Doc(orderNumber)

	snap, err := repo.getDoc(ctx, doc)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by order number")
	}

	var reviewM model.ReviewModel
	if err := snap.DataTo(&reviewM); err != nil {
		return nil, errors.Wrap(err, "failed to decode review document")
	}

	return reviewM.ToReviewDomain(snap.Ref.ID), nil
}

// ListReviews retrieves all reviews, newest first.
func (repo *reviewRepository) ListReviews(ctx context.Context) ([]*entity.Review, error) {
	query := repo.client.collection(collectionReviews).OrderBy("createdAt", firestore.Desc)

	docs := repo.documents(ctx, query)
	defer docs.Stop()

	var reviews []*entity.Review
	for {
		snap, err := docs.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list reviews")
		}

		var reviewM model.ReviewModel
		if err := snap.DataTo(&reviewM); err != nil {
			return nil, errors.Wrap(err, "failed to decode review document")
		}

		reviews = append(reviews, reviewM.ToReviewDomain(snap.Ref.ID))
	}

	return reviews, nil
}

// DeleteReview removes a review by its document ID.
func (repo *reviewRepository) DeleteReview(ctx context.Context, id string) error {
	doc := repo.client.collection(collectionReviews).Doc(id)

	var err error
	if repo.tx != nil {
		err = repo.tx.Delete(doc)
	} else {
		_, err = doc.Delete(ctx)
	}
	if err != nil {
		return errors.Wrap(err, "failed to delete review")
	}

	return nil
}

func (repo *reviewRepository) getDoc(ctx context.Context, doc *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	if repo.tx != nil {
		return repo.tx.Get(doc)
	}

	return doc.Get(ctx)
}

func (repo *reviewRepository) documents(ctx context.Context, query firestore.Query) *firestore.DocumentIterator {
	if repo.tx != nil {
		return repo.tx.Documents(query)
	}

	return query.Documents(ctx)
}
