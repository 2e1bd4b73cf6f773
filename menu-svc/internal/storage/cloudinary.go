package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const DefaultCloudinaryFolder = "foodie-menu"

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryUploader sends images to the hosted media service and returns
// their secure URL.
type CloudinaryUploader struct {
	api    cloudinaryAPI
	folder string
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return NewCloudinaryUploaderWithAPI(&cld.Upload, folder), nil
}

func NewCloudinaryUploaderWithAPI(api cloudinaryAPI, folder string) *CloudinaryUploader {
	if folder == "" {
		folder = DefaultCloudinaryFolder
	}
	return &CloudinaryUploader{api: api, folder: folder}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	result, err := u.api.Upload(ctx, r, uploader.UploadParams{
		Folder:       u.folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload %s: %w", filename, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload %s: %s", filename, result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", errors.New("cloudinary upload returned no url")
	}
	return result.SecureURL, nil
}
