package repository

import (
	"context"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TicTacToeRepository handles the shared tic-tac-toe board documents.
type TicTacToeRepository struct {
	collection *mongo.Collection
}

func NewTicTacToeRepository(db *mongo.Database) *TicTacToeRepository {
	return &TicTacToeRepository{
		collection: db.Collection("ticTacToe"),
	}
}

// UpsertGame replaces the pair's board document, creating it if missing.
func (r *TicTacToeRepository) UpsertGame(ctx context.Context, game *models.TicTacToeGame) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": game.ID}, game, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("game_id", game.ID).Error("Failed to upsert tic-tac-toe game")
	}
	return err
}

// GetGame fetches the board document, or nil when no game exists yet.
func (r *TicTacToeRepository) GetGame(ctx context.Context, id string) (*models.TicTacToeGame, error) {
	var game models.TicTacToeGame
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&game)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// UpdateGame applies a partial update to the board document.
func (r *TicTacToeRepository) UpdateGame(ctx context.Context, id string, update map[string]interface{}) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		logger.Log.WithError(err).WithField("game_id", id).Error("Failed to update tic-tac-toe game")
	}
	return err
}

// DeleteGame removes the pair's board so a new game can start fresh.
func (r *TicTacToeRepository) DeleteGame(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
