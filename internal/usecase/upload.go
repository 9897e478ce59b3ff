package usecase

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/storage"
)

func storeUpload(ctx context.Context, files storage.FileStore, bucket string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	return files.Store(ctx, bucket, header.Filename, file)
}
