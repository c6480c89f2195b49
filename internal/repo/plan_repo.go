package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/incredible-trails/trips-service/internal/domain"
)

func (s *Store) CreatePlan(ctx context.Context, p *domain.Plan) error {
	p.CreatedAt = time.Now().UTC()
	res, err := s.colPlans.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// ListPlans returns a full snapshot of every plan in creation order.
// ObjectIDs are monotonic, so _id breaks ties between equal timestamps.
func (s *Store) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	cur, err := s.colPlans.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.Plan{}
	for cur.Next(ctx) {
		var p domain.Plan
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}
