package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
	"github.com/biz-tools/biz-atlas/pkg/models/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReportStore persists generated report snapshots. Snapshots are append-only:
// the only mutation supported is deletion by the owning user.
type ReportStore struct {
	collection *mongo.Collection
}

func NewReportStore(db *mongo.Database) *ReportStore {
	return &ReportStore{collection: db.Collection(reportsCollection)}
}

func (s *ReportStore) Insert(ctx context.Context, snapshot domain.ReportSnapshot) error {
	if _, err := s.collection.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("%w: insert report: %v", store.ErrUnavailable, err)
	}
	return nil
}

// List returns one page of the user's snapshots, newest first, plus the
// total match count for pagination.
func (s *ReportStore) List(
	ctx context.Context,
	userID string,
	filter store.ReportFilter,
	page, pageSize int,
) ([]domain.ReportSnapshot, int, error) {
	query := bson.M{"user_id": userID}
	if filter.ReportType != "" {
		query["report_type"] = filter.ReportType
	}

	total, err := s.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: count reports: %v", store.ErrUnavailable, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "generated_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: find reports: %v", store.ErrUnavailable, err)
	}

	snapshots := make([]domain.ReportSnapshot, 0)
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, 0, fmt.Errorf("%w: decode reports: %v", store.ErrUnavailable, err)
	}
	return snapshots, int(total), nil
}

func (s *ReportStore) Get(ctx context.Context, userID, reportID string) (domain.ReportSnapshot, error) {
	var snapshot domain.ReportSnapshot
	err := s.collection.FindOne(ctx, bson.M{"id": reportID, "user_id": userID}).Decode(&snapshot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ReportSnapshot{}, store.ErrNotFound
	}
	if err != nil {
		return domain.ReportSnapshot{}, fmt.Errorf("%w: get report: %v", store.ErrUnavailable, err)
	}
	return snapshot, nil
}

func (s *ReportStore) Delete(ctx context.Context, userID, reportID string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"id": reportID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("%w: delete report: %v", store.ErrUnavailable, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
