package mongodb

import (
	"context"
	"fmt"

	"github.com/biz-tools/biz-atlas/pkg/models/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CustomerStore struct {
	collection *mongo.Collection
}

func NewCustomerStore(db *mongo.Database) *CustomerStore {
	return &CustomerStore{collection: db.Collection(customersCollection)}
}

// Find returns the user's customers, optionally restricted to those created
// inside rng. A nil range means the user's full history.
func (s *CustomerStore) Find(ctx context.Context, userID string, rng *store.DateRange) ([]store.Customer, error) {
	query := bson.M{"user_id": userID}
	if rng != nil {
		query["created_at"] = createdAtRange(rng)
	}

	cursor, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: find customers: %v", store.ErrUnavailable, err)
	}

	customers := make([]store.Customer, 0)
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("%w: decode customers: %v", store.ErrUnavailable, err)
	}
	return customers, nil
}
