package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MoodRepository handles database operations related to mood entries.
type MoodRepository struct {
	collection *mongo.Collection
}

func NewMoodRepository(db *mongo.Database) *MoodRepository {
	return &MoodRepository{
		collection: db.Collection("moods"),
	}
}

// CreateMood inserts a new mood entry.
func (r *MoodRepository) CreateMood(ctx context.Context, mood *models.MoodEntry) (*models.MoodEntry, error) {
	if mood.ID == "" {
		mood.ID = uuid.NewString()
	}
	mood.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, mood); err != nil {
		logger.Log.WithError(err).Error("Failed to insert mood entry")
		return nil, err
	}
	return mood, nil
}

// GetLatestMood fetches a user's most recent mood logged since the given
// time, or nil.
func (r *MoodRepository) GetLatestMood(ctx context.Context, userID string, since time.Time) (*models.MoodEntry, error) {
	filter := bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": since},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var mood models.MoodEntry
	err := r.collection.FindOne(ctx, filter, opts).Decode(&mood)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mood, nil
}

// GetRecentMoods fetches the pair's recent mood history, newest first.
func (r *MoodRepository) GetRecentMoods(ctx context.Context, pairID string, limit int64) ([]models.MoodEntry, error) {
	filter := bson.M{"pair_id": pairID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("pair_id", pairID).Error("Failed to fetch moods")
		return nil, err
	}
	defer cursor.Close(ctx)

	var moods []models.MoodEntry
	if err := cursor.All(ctx, &moods); err != nil {
		return nil, err
	}
	return moods, nil
}
