package mongodb

import (
	"context"
	"fmt"

	"github.com/biz-tools/biz-atlas/pkg/models/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InvoiceStore reads invoice records scoped to a single user. All failures
// from the driver surface as store.ErrUnavailable; an empty result is not
// an error.
type InvoiceStore struct {
	collection *mongo.Collection
}

func NewInvoiceStore(db *mongo.Database) *InvoiceStore {
	return &InvoiceStore{collection: db.Collection(invoicesCollection)}
}

func (s *InvoiceStore) Find(
	ctx context.Context,
	userID string,
	rng *store.DateRange,
	filter store.InvoiceFilter,
) ([]store.Invoice, error) {
	query := bson.M{"user_id": userID}
	if rng != nil {
		query["created_at"] = createdAtRange(rng)
	}
	if filter.PaymentStatus != "" {
		query["payment_status"] = filter.PaymentStatus
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	cursor, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: find invoices: %v", store.ErrUnavailable, err)
	}

	invoices := make([]store.Invoice, 0)
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, fmt.Errorf("%w: decode invoices: %v", store.ErrUnavailable, err)
	}
	return invoices, nil
}

// createdAtRange translates an inclusive calendar-day range into the
// half-open interval the created_at timestamps are compared against.
func createdAtRange(rng *store.DateRange) bson.M {
	return bson.M{
		"$gte": rng.Start,
		"$lt":  rng.End.AddDate(0, 0, 1),
	}
}
