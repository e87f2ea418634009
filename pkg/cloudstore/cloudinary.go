package cloudstore

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Config holds Cloudinary connection details.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// CloudinaryStorage is a Cloudinary implementation of Storage.
type CloudinaryStorage struct {
	client *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage creates a new Cloudinary client. Missing credentials
// are not fatal: the client starts unconfigured and the upload route reports
// service-unavailable until credentials are provided.
func NewCloudinaryStorage(cfg Config) (*CloudinaryStorage, error) {
	folder := cfg.Folder
	if folder == "" {
		folder = "factures"
	}

	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		log.Println("Cloudinary credentials not set, PDF upload disabled")
		return &CloudinaryStorage{folder: folder}, nil
	}

	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryStorage{
		client: client,
		folder: folder,
	}, nil
}

// Configured reports whether Cloudinary credentials were provided.
func (s *CloudinaryStorage) Configured() bool {
	return s.client != nil
}

// StoreFile uploads a local file to Cloudinary as a raw asset and returns
// its public identifier, URL and size.
func (s *CloudinaryStorage) StoreFile(ctx context.Context, localPath, publicID, description string) (*StoredFile, error) {
	if s.client == nil {
		return nil, errors.New("cloudinary is not configured")
	}

	params := uploader.UploadParams{
		ResourceType: "raw",
		Folder:       s.folder,
		PublicID:     publicID,
	}
	if description != "" {
		params.Context = api.CldAPIMap{"caption": description}
	}

	result, err := s.client.Upload.Upload(ctx, localPath, params)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to Cloudinary: %w", err)
	}

	return &StoredFile{
		ID:   result.PublicID,
		URL:  result.SecureURL,
		Size: result.Bytes,
	}, nil
}
