package repository

import (
	"context"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GentleDaysRepository handles the gentle-days status, settings and
// partner-message collections.
type GentleDaysRepository struct {
	statuses *mongo.Collection
	settings *mongo.Collection
	messages *mongo.Collection
}

func NewGentleDaysRepository(db *mongo.Database) *GentleDaysRepository {
	return &GentleDaysRepository{
		statuses: db.Collection("gentleDaysStatus"),
		settings: db.Collection("gentleDaysSettings"),
		messages: db.Collection("gentleDaysMessages"),
	}
}

func statusDocID(userID, day string) string {
	return userID + "_" + day
}

// UpsertStatus writes the user's check-in for a day; the latest write wins.
func (r *GentleDaysRepository) UpsertStatus(ctx context.Context, status *models.GentleDayStatus) error {
	status.ID = statusDocID(status.UserID, status.Day)
	status.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := r.statuses.ReplaceOne(ctx, bson.M{"_id": status.ID}, status, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", status.UserID).Error("Failed to upsert gentle day status")
	}
	return err
}

// GetStatus fetches a user's check-in for a day, or nil.
func (r *GentleDaysRepository) GetStatus(ctx context.Context, userID, day string) (*models.GentleDayStatus, error) {
	var status models.GentleDayStatus
	err := r.statuses.FindOne(ctx, bson.M{"_id": statusDocID(userID, day)}).Decode(&status)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// GetSettings fetches a user's sharing settings, or nil when never saved.
func (r *GentleDaysRepository) GetSettings(ctx context.Context, userID string) (*models.GentleDaysSettings, error) {
	var settings models.GentleDaysSettings
	err := r.settings.FindOne(ctx, bson.M{"_id": userID}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpsertSettings saves a user's sharing settings.
func (r *GentleDaysRepository) UpsertSettings(ctx context.Context, settings *models.GentleDaysSettings) error {
	settings.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := r.settings.ReplaceOne(ctx, bson.M{"_id": settings.UserID}, settings, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", settings.UserID).Error("Failed to upsert gentle days settings")
	}
	return err
}

// UpsertPartnerMessage writes the derived one-liner for the partner.
func (r *GentleDaysRepository) UpsertPartnerMessage(ctx context.Context, msg *models.GentleDayPartnerMessage) error {
	msg.ID = statusDocID(msg.UserID, msg.Day)
	msg.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := r.messages.ReplaceOne(ctx, bson.M{"_id": msg.ID}, msg, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", msg.UserID).Error("Failed to upsert partner message")
	}
	return err
}

// GetPartnerMessage fetches the derived message a user published for a day,
// or nil.
func (r *GentleDaysRepository) GetPartnerMessage(ctx context.Context, userID, day string) (*models.GentleDayPartnerMessage, error) {
	var msg models.GentleDayPartnerMessage
	err := r.messages.FindOne(ctx, bson.M{"_id": statusDocID(userID, day)}).Decode(&msg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
