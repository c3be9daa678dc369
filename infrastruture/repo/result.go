package repo

import (
	"context"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultRepo handles the persistence of finished rounds.
type ResultRepo struct {
	collection *mongo.Collection
}

var _ i.ResultRepo = &ResultRepo{}

// NewResultRepo creates a ResultRepo and ensures the per-user history index.
func NewResultRepo(client *mongo.Client, dbName, collectionName string) (*ResultRepo, error) {
	collection := client.Database(dbName).Collection(collectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "finishedAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}

	return &ResultRepo{collection: collection}, nil
}

// Save inserts a finished round. Saving the same round twice is a no-op.
func (r *ResultRepo) Save(result *dmn.RoundResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, result)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("unexpected error: %w", err)
	}
	return nil
}

// ByUser returns up to limit results of a user, most recent first.
func (r *ResultRepo) ByUser(userID uuid.UUID, limit int64) ([]*dmn.RoundResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "finishedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	defer cursor.Close(ctx)

	results := []*dmn.RoundResult{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return results, nil
}
