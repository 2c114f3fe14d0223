package applications

import (
	"context"
	"fmt"

	"flux-backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persists application records. Insert must return *DuplicateError
// when the store rejects a phone or email that is already taken.
type Repository interface {
	Insert(ctx context.Context, app *models.Application) error
	List(ctx context.Context, limit int64) ([]models.Application, error)
	Ping(ctx context.Context) error
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// EnsureIndexes creates the unique phone and email indexes and the
// createdAt index used by List. It is idempotent.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("phone_1"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_1"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_-1"),
		},
	})
	if err != nil {
		return fmt.Errorf("create application indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Insert(ctx context.Context, app *models.Application) error {
	_, err := r.coll.InsertOne(ctx, app)
	if err == nil {
		return nil
	}
	if field, ok := duplicateField(err); ok {
		return &DuplicateError{Field: field}
	}
	return fmt.Errorf("insert application: %w", err)
}

// List returns at most limit records, newest first.
func (r *MongoRepository) List(ctx context.Context, limit int64) ([]models.Application, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find applications: %w", err)
	}
	defer cursor.Close(ctx)

	apps := make([]models.Application, 0)
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}
	return apps, nil
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}
