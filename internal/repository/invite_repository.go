package repository

import (
	"context"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InviteRepository handles database operations for pairing invite codes.
type InviteRepository struct {
	collection *mongo.Collection
}

func NewInviteRepository(db *mongo.Database) *InviteRepository {
	return &InviteRepository{
		collection: db.Collection("invites"),
	}
}

// CreateInvite stores a new invite code.
func (r *InviteRepository) CreateInvite(ctx context.Context, invite *models.Invite) error {
	invite.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, invite); err != nil {
		logger.Log.WithError(err).Error("Failed to insert invite")
		return err
	}
	return nil
}

// GetInvite fetches an invite by its code.
func (r *InviteRepository) GetInvite(ctx context.Context, code string) (*models.Invite, error) {
	var invite models.Invite
	if err := r.collection.FindOne(ctx, bson.M{"_id": code}).Decode(&invite); err != nil {
		return nil, err
	}
	return &invite, nil
}

// MarkUsed flags an invite as redeemed by the given user.
func (r *InviteRepository) MarkUsed(ctx context.Context, code, usedBy string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": code}, bson.M{
		"$set": bson.M{"used": true, "used_by": usedBy},
	})
	return err
}
