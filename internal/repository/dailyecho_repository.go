package repository

import (
	"context"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DailyEchoRepository handles the daily echo documents.
type DailyEchoRepository struct {
	collection *mongo.Collection
}

func NewDailyEchoRepository(db *mongo.Database) *DailyEchoRepository {
	return &DailyEchoRepository{
		collection: db.Collection("dailyEchoes"),
	}
}

// UpsertEcho creates or replaces the pair's echo for a day.
func (r *DailyEchoRepository) UpsertEcho(ctx context.Context, echo *models.DailyEcho) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": echo.ID}, echo, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("echo_id", echo.ID).Error("Failed to upsert daily echo")
	}
	return err
}

// GetEcho fetches an echo by its id, or nil.
func (r *DailyEchoRepository) GetEcho(ctx context.Context, id string) (*models.DailyEcho, error) {
	var echo models.DailyEcho
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&echo)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &echo, nil
}

// UpdateEcho applies a partial update to an echo document.
func (r *DailyEchoRepository) UpdateEcho(ctx context.Context, id string, update map[string]interface{}) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		logger.Log.WithError(err).WithField("echo_id", id).Error("Failed to update daily echo")
	}
	return err
}
