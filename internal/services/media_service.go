package services

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/syncapp/sync-backend/pkg/logger"
)

// MediaService uploads review photos and videos to S3.
type MediaService struct {
	client *s3.Client
	bucket string
	region string
}

func NewMediaService(ctx context.Context, region, bucket string) (*MediaService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %v", err)
	}

	return &MediaService{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

// MediaFile is one file in an upload batch.
type MediaFile struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// UploadResult reports a batch outcome. Partial failure is not an error at
// this level; the caller phrases it as "N of M uploaded".
type UploadResult struct {
	URLs     []string `json:"urls"`
	Uploaded int      `json:"uploaded"`
	Total    int      `json:"total"`
}

// Upload stores one object and returns its public URL.
func (s *MediaService) Upload(ctx context.Context, userID string, file MediaFile) (string, error) {
	key := fmt.Sprintf("reviews/%s/%s%s", userID, uuid.NewString(), path.Ext(file.Name))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file.Body,
		ContentType: aws.String(file.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %v", file.Name, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// UploadBatch stores a set of files, keeping going past individual failures.
func (s *MediaService) UploadBatch(ctx context.Context, userID string, files []MediaFile) *UploadResult {
	result := &UploadResult{
		URLs:  []string{},
		Total: len(files),
	}

	for _, file := range files {
		url, err := s.Upload(ctx, userID, file)
		if err != nil {
			logger.Log.WithError(err).WithField("file", file.Name).Warn("Media upload failed")
			continue
		}
		result.URLs = append(result.URLs, url)
		result.Uploaded++
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id":  userID,
		"uploaded": result.Uploaded,
		"total":    result.Total,
	}).Info("Media batch processed")
	return result
}
