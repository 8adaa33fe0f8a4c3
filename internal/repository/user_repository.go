package repository

import (
	"context"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository handles database operations related to users.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// CreateUser inserts a new user document.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		logger.Log.WithError(err).Error("Failed to insert user")
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("User created successfully")
	return user, nil
}

// GetUserByID fetches a user by its id.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		logger.Log.WithError(err).WithField("user_id", id).Warn("Failed to find user by ID")
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail fetches a user by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByVerifyToken fetches a user by its email-verification token.
func (r *UserRepository) GetUserByVerifyToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"verify_token": token}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByResetToken fetches a user by its password-reset token.
func (r *UserRepository) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"reset_token": token}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update to a user document.
func (r *UserRepository) UpdateUser(ctx context.Context, id string, update map[string]interface{}) error {
	update["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", id).Error("Failed to update user")
		return err
	}
	return nil
}

// GetPairedUsers returns every user that has a linked partner. Used by the
// background sweeps to enumerate pairs.
func (r *UserRepository) GetPairedUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"partner_id": bson.M{"$nin": bson.A{nil, ""}}})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch paired users")
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
