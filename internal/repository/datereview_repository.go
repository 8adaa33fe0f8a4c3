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

// DateReviewRepository handles database operations related to date reviews.
type DateReviewRepository struct {
	collection *mongo.Collection
}

func NewDateReviewRepository(db *mongo.Database) *DateReviewRepository {
	return &DateReviewRepository{
		collection: db.Collection("dateReviews"),
	}
}

// CreateReview inserts a new review.
func (r *DateReviewRepository) CreateReview(ctx context.Context, review *models.DateReview) (*models.DateReview, error) {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	review.CreatedAt = models.NewFlexTime(time.Now())
	review.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		logger.Log.WithError(err).Error("Failed to insert review")
		return nil, err
	}
	return review, nil
}

// UpdateReview applies a partial update to a review.
func (r *DateReviewRepository) UpdateReview(ctx context.Context, id string, update map[string]interface{}) error {
	update["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		logger.Log.WithError(err).WithField("review_id", id).Error("Failed to update review")
		return err
	}
	return nil
}

// GetReviewsByDateNight fetches the reviews for a date night, newest first.
// Falls back to an unsorted query when the sorted one fails.
func (r *DateReviewRepository) GetReviewsByDateNight(ctx context.Context, dateNightID string) ([]models.DateReview, error) {
	filter := bson.M{"date_night_id": dateNightID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).Warn("Sorted review query failed, retrying unsorted")
		cursor, err = r.collection.Find(ctx, filter)
		if err != nil {
			return nil, err
		}
	}
	defer cursor.Close(ctx)

	var reviews []models.DateReview
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetUserReview fetches a user's review for a date night, or nil when the
// user has not reviewed it yet.
func (r *DateReviewRepository) GetUserReview(ctx context.Context, dateNightID, userID string) (*models.DateReview, error) {
	var review models.DateReview
	err := r.collection.FindOne(ctx, bson.M{
		"date_night_id": dateNightID,
		"user_id":       userID,
	}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}
