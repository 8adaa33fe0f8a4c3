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

// GameRepository handles database operations related to game sessions.
type GameRepository struct {
	collection *mongo.Collection
}

func NewGameRepository(db *mongo.Database) *GameRepository {
	return &GameRepository{
		collection: db.Collection("games"),
	}
}

// CreateSession inserts a new game session.
func (r *GameRepository) CreateSession(ctx context.Context, session *models.GameSession) (*models.GameSession, error) {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	session.CreatedAt = models.NewFlexTime(time.Now())
	session.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, session); err != nil {
		logger.Log.WithError(err).Error("Failed to insert game session")
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"game_id":   session.ID,
		"game_type": session.GameType,
	}).Info("Game session created successfully")
	return session, nil
}

// GetSessionByID fetches a session by its id.
func (r *GameRepository) GetSessionByID(ctx context.Context, id string) (*models.GameSession, error) {
	var session models.GameSession
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session); err != nil {
		logger.Log.WithError(err).WithField("game_id", id).Warn("Failed to find game session by ID")
		return nil, err
	}
	return &session, nil
}

// GetActiveSessions fetches the pair's pending and active sessions.
func (r *GameRepository) GetActiveSessions(ctx context.Context, pairID string) ([]models.GameSession, error) {
	filter := bson.M{
		"pair_id": pairID,
		"status":  bson.M{"$in": bson.A{models.GameStatusPending, models.GameStatusActive}},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).WithField("pair_id", pairID).Error("Failed to fetch active game sessions")
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.GameSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetRecentCompleted fetches the most recently finished sessions, bounded by
// limit. Falls back to an unsorted query when the sorted one fails; the
// caller sorts in-process.
func (r *GameRepository) GetRecentCompleted(ctx context.Context, pairID string, limit int64) ([]models.GameSession, error) {
	filter := bson.M{
		"pair_id": pairID,
		"status":  models.GameStatusCompleted,
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).Warn("Sorted completed-games query failed, retrying unsorted")
		cursor, err = r.collection.Find(ctx, filter, options.Find().SetLimit(limit))
		if err != nil {
			return nil, err
		}
	}
	defer cursor.Close(ctx)

	var sessions []models.GameSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// UpdateSession applies a partial update to a session.
func (r *GameRepository) UpdateSession(ctx context.Context, id string, update map[string]interface{}) error {
	update["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		logger.Log.WithError(err).WithField("game_id", id).Error("Failed to update game session")
		return err
	}
	return nil
}

// DeleteSession removes a session document.
func (r *GameRepository) DeleteSession(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("game_id", id).Error("Failed to delete game session")
		return err
	}
	return nil
}
