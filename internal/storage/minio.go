package storage

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

type MinioGateway struct {
	client *minio.Client
	bucket string
	log    *zap.Logger
}

func NewMinioGateway(endpoint, accessKey, secretKey, bucket string, useSSL bool, log *zap.Logger) (*MinioGateway, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
		exists, errExists := client.BucketExists(context.Background(), bucket)
		if errExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", bucket, err)
		}
	}

	log.Info("storage gateway ready", zap.String("endpoint", endpoint), zap.String("bucket", bucket))

	return &MinioGateway{client: client, bucket: bucket, log: log}, nil
}

func (g *MinioGateway) Upload(ctx context.Context, localPath string) (*Asset, error) {
	ext := filepath.Ext(localPath)
	objectKey := fmt.Sprintf("specialists/%s%s", uuid.NewString(), ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := g.client.FPutObject(ctx, g.bucket, objectKey, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		g.log.Error("upload failed", zap.String("key", objectKey), zap.Error(err))
		return nil, fmt.Errorf("failed to upload object %s: %w", objectKey, err)
	}

	url := fmt.Sprintf("%s/%s/%s", g.client.EndpointURL().String(), g.bucket, info.Key)
	return &Asset{URL: url, ID: objectKey}, nil
}

func (g *MinioGateway) Delete(ctx context.Context, fileID string) error {
	if err := g.client.RemoveObject(ctx, g.bucket, fileID, minio.RemoveObjectOptions{}); err != nil {
		g.log.Error("remote delete failed", zap.String("key", fileID), zap.Error(err))
		return fmt.Errorf("failed to delete object %s: %w", fileID, err)
	}
	return nil
}
