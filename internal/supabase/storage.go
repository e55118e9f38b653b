package supabase

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	storage "github.com/supabase-community/storage-go"
	"neuroforge-backend/internal/generation"
)

// objectUploader is the part of the storage-go client used for hosting.
type objectUploader interface {
	UploadFile(bucketID, relativePath string, data []byte, contentType string) error
}

type storageGoUploader struct {
	client *storage.Client
}

func (s storageGoUploader) UploadFile(bucketID, relativePath string, data []byte, contentType string) error {
	upsert := true
	_, err := s.client.UploadFile(bucketID, relativePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	return err
}

// StorageClient hosts pipeline deliverables in a Supabase Storage bucket.
type StorageClient struct {
	uploader   objectUploader
	bucket     string
	baseURL    string
	httpClient *http.Client
}

var _ generation.MediaHost = (*StorageClient)(nil)

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	s := &StorageClient{
		bucket:     bucket,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	if baseURL == "" || serviceRoleKey == "" {
		return s, nil
	}
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	s.uploader = storageGoUploader{client: storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)}
	return s, nil
}

func (s *StorageClient) Host(ctx context.Context, asset generation.Asset) (string, error) {
	if s.uploader == nil {
		return "", generation.ErrNotConfigured
	}

	data, contentType, err := asset.Resolve(ctx, s.httpClient)
	if err != nil {
		return "", err
	}

	storagePath := asset.StoragePath()
	if err := s.uploader.UploadFile(s.bucket, storagePath, data, contentType); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.GetPublicURL(storagePath), nil
}

func (s *StorageClient) GetPublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, storagePath)
}
