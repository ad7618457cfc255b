// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/MKhiriev/expense-tracker/internal/config"
	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const avatarKeyPrefix = "avatars"

type s3AssetStore struct {
	client *s3.Client
	cfg    config.Assets

	logger *logger.Logger
}

// NewAssetStore returns an [AssetStore] backed by an S3-compatible bucket.
// When no bucket is configured every call fails with [ErrAssetsDisabled].
//
// Static credentials are used when an access key is configured; otherwise
// the default AWS credential chain applies. A custom endpoint (MinIO,
// LocalStack) is set through cfg.Endpoint.
func NewAssetStore(ctx context.Context, cfg config.Assets, logger *logger.Logger) (AssetStore, error) {
	if !cfg.Enabled() {
		return NewDisabledAssetStore(), nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
		o.RetryMaxAttempts = 1
	})

	return &s3AssetStore{client: client, cfg: cfg, logger: logger}, nil
}

func (s *s3AssetStore) Upload(ctx context.Context, userID string, upload models.AvatarUpload) (models.UploadedAsset, error) {
	key := avatarKey(userID, upload.FileName)
	// The stored type comes from the bytes; the client's header is ignored
	// so an image polyglot is never served back as markup.
	contentType := mimetype.Detect(upload.Data).String()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(upload.Data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(upload.Data))),
	})
	if err != nil {
		s.logger.Err(err).Str("func", "*s3AssetStore.Upload").Str("key", key).Msg("error uploading avatar")
		return models.UploadedAsset{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	return models.UploadedAsset{
		FileID:       key,
		URL:          joinURL(s.cfg.PublicURL, key),
		ThumbnailURL: joinURL(s.cfg.ThumbnailURL, key),
	}, nil
}

func (s *s3AssetStore) Delete(ctx context.Context, fileID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(fileID),
	})
	if err != nil {
		s.logger.Err(err).Str("func", "*s3AssetStore.Delete").Str("key", fileID).Msg("error deleting avatar")
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	return nil
}

// avatarKey builds "avatars/<userID>/<uuid><ext>" keeping the lowercased
// extension of the submitted file name.
func avatarKey(userID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return path.Join(avatarKeyPrefix, userID, uuid.NewString()+ext)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}

type disabledAssetStore struct{}

// NewDisabledAssetStore returns an [AssetStore] that rejects uploads. Deleting
// is a no-op because nothing can have been stored.
func NewDisabledAssetStore() AssetStore {
	return disabledAssetStore{}
}

func (disabledAssetStore) Upload(context.Context, string, models.AvatarUpload) (models.UploadedAsset, error) {
	return models.UploadedAsset{}, ErrAssetsDisabled
}

func (disabledAssetStore) Delete(context.Context, string) error {
	return nil
}
