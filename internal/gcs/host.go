// Package gcs hosts pipeline deliverables in a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
	"neuroforge-backend/internal/generation"
)

const publicBaseURL = "https://storage.googleapis.com"

// writerFactory opens an object writer; the real one wraps a bucket handle.
type writerFactory func(ctx context.Context, objectName, contentType string) io.WriteCloser

type Host struct {
	client     *storage.Client
	newWriter  writerFactory
	bucket     string
	httpClient *http.Client
}

var _ generation.MediaHost = (*Host)(nil)

// NewHost creates a GCS host. credentialsFile may be empty to use
// application default credentials.
func NewHost(ctx context.Context, bucket, credentialsFile string) (*Host, error) {
	if bucket == "" {
		return nil, fmt.Errorf("GCS bucket must be provided")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	handle := client.Bucket(bucket)
	return &Host{
		client: client,
		newWriter: func(ctx context.Context, objectName, contentType string) io.WriteCloser {
			w := handle.Object(objectName).NewWriter(ctx)
			w.ContentType = contentType
			return w
		},
		bucket:     bucket,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (h *Host) Host(ctx context.Context, asset generation.Asset) (string, error) {
	data, contentType, err := asset.Resolve(ctx, h.httpClient)
	if err != nil {
		return "", err
	}

	objectName := asset.StoragePath()
	writer := h.newWriter(ctx, objectName, contentType)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("failed to write to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize GCS write: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", publicBaseURL, h.bucket, objectName), nil
}

func (h *Host) Close() error {
	if h.client != nil {
		return h.client.Close()
	}
	return nil
}
