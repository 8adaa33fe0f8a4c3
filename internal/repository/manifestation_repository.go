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

// ManifestationRepository handles database operations related to manifestations.
type ManifestationRepository struct {
	collection *mongo.Collection
}

func NewManifestationRepository(db *mongo.Database) *ManifestationRepository {
	return &ManifestationRepository{
		collection: db.Collection("manifestations"),
	}
}

// CreateManifestation inserts a new manifestation.
func (r *ManifestationRepository) CreateManifestation(ctx context.Context, m *models.Manifestation) (*models.Manifestation, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, m); err != nil {
		logger.Log.WithError(err).Error("Failed to insert manifestation")
		return nil, err
	}

	logger.Log.WithField("manifestation_id", m.ID).Info("Manifestation created successfully")
	return m, nil
}

// GetManifestationByID fetches a manifestation by its id.
func (r *ManifestationRepository) GetManifestationByID(ctx context.Context, id string) (*models.Manifestation, error) {
	var m models.Manifestation
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		logger.Log.WithError(err).WithField("manifestation_id", id).Warn("Failed to find manifestation by ID")
		return nil, err
	}
	return &m, nil
}

// GetManifestationsByPair fetches the pair's manifestations, optionally
// filtered by type (shared|individual), newest first.
func (r *ManifestationRepository) GetManifestationsByPair(ctx context.Context, pairID, manifestationType string) ([]models.Manifestation, error) {
	filter := bson.M{"pair_id": pairID}
	if manifestationType != "" {
		filter["type"] = manifestationType
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("pair_id", pairID).Error("Failed to fetch manifestations")
		return nil, err
	}
	defer cursor.Close(ctx)

	var manifestations []models.Manifestation
	if err := cursor.All(ctx, &manifestations); err != nil {
		return nil, err
	}
	return manifestations, nil
}

// UpdateManifestation applies a partial update.
func (r *ManifestationRepository) UpdateManifestation(ctx context.Context, id string, update map[string]interface{}) error {
	update["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		logger.Log.WithError(err).WithField("manifestation_id", id).Error("Failed to update manifestation")
		return err
	}
	return nil
}

// DeleteManifestation removes a manifestation document.
func (r *ManifestationRepository) DeleteManifestation(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("manifestation_id", id).Error("Failed to delete manifestation")
		return err
	}
	return nil
}
