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

// DateNightRepository handles database operations related to date nights.
type DateNightRepository struct {
	collection *mongo.Collection
}

// NewDateNightRepository creates a new instance of DateNightRepository.
func NewDateNightRepository(db *mongo.Database) *DateNightRepository {
	return &DateNightRepository{
		collection: db.Collection("dateNights"),
	}
}

// CreateDateNight inserts a new date night.
func (r *DateNightRepository) CreateDateNight(ctx context.Context, night *models.DateNight) (*models.DateNight, error) {
	if night.ID == "" {
		night.ID = uuid.NewString()
	}
	night.CreatedAt = models.NewFlexTime(time.Now())
	night.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, night); err != nil {
		logger.Log.WithError(err).Error("Failed to insert date night")
		return nil, err
	}

	logger.Log.WithField("date_night_id", night.ID).Info("Date night created successfully")
	return night, nil
}

// GetDateNightByID fetches a date night by its id.
func (r *DateNightRepository) GetDateNightByID(ctx context.Context, id string) (*models.DateNight, error) {
	var night models.DateNight
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&night); err != nil {
		logger.Log.WithError(err).WithField("date_night_id", id).Warn("Failed to find date night by ID")
		return nil, err
	}
	return &night, nil
}

// GetDateNightsByPair fetches every date night for a pair, most recent date
// first. If the sorted query fails the caller still gets the result set and
// the in-process sorter puts it in order.
func (r *DateNightRepository) GetDateNightsByPair(ctx context.Context, pairID string) ([]models.DateNight, error) {
	filter := bson.M{"pair_id": pairID}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("pair_id", pairID).Warn("Sorted date night query failed, retrying unsorted")
		cursor, err = r.collection.Find(ctx, filter)
		if err != nil {
			return nil, err
		}
	}
	defer cursor.Close(ctx)

	var nights []models.DateNight
	if err := cursor.All(ctx, &nights); err != nil {
		return nil, err
	}
	return nights, nil
}

// UpdateDateNight applies a partial update to a date night.
func (r *DateNightRepository) UpdateDateNight(ctx context.Context, id string, update map[string]interface{}) error {
	update["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		logger.Log.WithError(err).WithField("date_night_id", id).Error("Failed to update date night")
		return err
	}
	return nil
}

// SetCalendarEventID records one user's external calendar event id for a
// date night.
func (r *DateNightRepository) SetCalendarEventID(ctx context.Context, id, userID, eventID string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"calendar_event_ids." + userID: eventID,
			"updated_at":                   time.Now(),
		},
	})
	return err
}

// MarkCompleted transitions a date night into the past.
func (r *DateNightRepository) MarkCompleted(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"completed": true, "updated_at": time.Now()},
	})
	if err != nil {
		logger.Log.WithError(err).WithField("date_night_id", id).Error("Failed to mark date night completed")
	}
	return err
}

// DeleteDateNight removes a date night document.
func (r *DateNightRepository) DeleteDateNight(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("date_night_id", id).Error("Failed to delete date night")
		return err
	}

	logger.Log.WithField("date_night_id", id).Info("Date night deleted successfully")
	return nil
}
