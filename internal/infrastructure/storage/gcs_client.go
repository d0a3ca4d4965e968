package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"storefront/pkg/logger"
)

const publicURLPrefix = "https://storage.googleapis.com/"

// CloudStorageClient stores product images in a public-read GCS bucket.
type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName string, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	storageClient := &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}

	if err := storageClient.ensureBucketCORS(ctx); err != nil {
		logger.Warn("Failed to set bucket CORS configuration: %v", err)
	}

	return storageClient, nil
}

// ensureBucketCORS lets the storefront pages load images cross-origin.
func (c *CloudStorageClient) ensureBucketCORS(ctx context.Context) error {
	bucket := c.client.Bucket(c.bucketName)

	attrs, err := bucket.Attrs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket attributes: %w", err)
	}
	if len(attrs.CORS) > 0 {
		return nil
	}

	_, err = bucket.Update(ctx, storage.BucketAttrsToUpdate{
		CORS: []storage.CORS{{
			MaxAge:          time.Hour,
			Methods:         []string{"GET", "HEAD"},
			Origins:         []string{"*"},
			ResponseHeaders: []string{"Content-Type"},
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to update bucket CORS: %w", err)
	}
	return nil
}

func (c *CloudStorageClient) UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error) {
	name := objectName(folder, fileType, uuid.NewString(), time.Now())

	obj := c.client.Bucket(c.bucketName).Object(name)
	wc := obj.NewWriter(ctx)
	wc.ContentType = fileType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, file); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to copy file to GCS: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to set ACL: %w", err)
	}

	return publicURL(c.bucketName, name), nil
}

func (c *CloudStorageClient) DeleteFile(ctx context.Context, fileURL string) error {
	name, err := objectFromURL(c.bucketName, fileURL)
	if err != nil {
		return err
	}

	if err := c.client.Bucket(c.bucketName).Object(name).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

func objectName(folder, fileType, id string, now time.Time) string {
	name := fmt.Sprintf("public/%s/%s-%s", strings.Trim(folder, "/"), id, now.Format("20060102150405"))

	switch fileType {
	case "image/jpeg", "image/jpg":
		return name + ".jpg"
	case "image/png":
		return name + ".png"
	case "image/gif":
		return name + ".gif"
	default:
		return name + ".bin"
	}
}

func publicURL(bucket, name string) string {
	return publicURLPrefix + bucket + "/" + name
}

// objectFromURL reverses publicURL. URLs pointing anywhere else, including
// images entered by hand, are rejected.
func objectFromURL(bucket, fileURL string) (string, error) {
	if !strings.HasPrefix(fileURL, publicURLPrefix) {
		return "", fmt.Errorf("not a GCS URL: %s", fileURL)
	}

	parts := strings.SplitN(strings.TrimPrefix(fileURL, publicURLPrefix), "/", 2)
	if len(parts) != 2 || parts[0] != bucket || parts[1] == "" {
		return "", fmt.Errorf("URL does not belong to bucket %s", bucket)
	}
	return parts[1], nil
}
