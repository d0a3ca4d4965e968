package service

import (
	"context"
	"io"
)

// FileUploadService stores product images and returns their public URL.
type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}
