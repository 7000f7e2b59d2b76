package repositories

import (
	"context"
	"time"

	"github.com/anonto42/ui-crate/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RevalidationRepository persists the log of dispatched revalidations.
type RevalidationRepository interface {
	Record(ctx context.Context, record *models.RevalidationRecord) error
}

// MongoRevalidationRepository implements RevalidationRepository for MongoDB
type MongoRevalidationRepository struct {
	collection *mongo.Collection
}

// NewMongoRevalidationRepository creates a new MongoRevalidationRepository
func NewMongoRevalidationRepository(db *mongo.Database) *MongoRevalidationRepository {
	return &MongoRevalidationRepository{collection: db.Collection("revalidations")}
}

func (r *MongoRevalidationRepository) Record(ctx context.Context, record *models.RevalidationRecord) error {
	record.ID = primitive.NewObjectID()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

