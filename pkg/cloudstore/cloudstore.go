// Package cloudstore wraps the remote object-storage provider used for
// archiving invoice PDFs.
package cloudstore

import "context"

// StoredFile describes a file persisted with the provider.
type StoredFile struct {
	ID   string
	URL  string
	Size int
}

// Storage stores raw files with a remote provider. Implementations are
// injected into the upload route so tests can substitute a fake.
type Storage interface {
	// Configured reports whether provider credentials are available.
	// When false, StoreFile must not be called and the route answers 503.
	Configured() bool
	// StoreFile uploads the file at localPath under the given public
	// identifier and returns its identifier, public URL and size.
	StoreFile(ctx context.Context, localPath, publicID, description string) (*StoredFile, error)
}
