package documents

import (
	"context"
	"fmt"
	"io"
)

// Uploader stores file content in the object store and returns the generated
// storage key. Implemented by storage.S3Uploader.
type Uploader interface {
	Upload(ctx context.Context, ownerID, filename string, content io.Reader) (string, error)
}

type Service struct {
	repo     Repository
	uploader Uploader
}

func NewService(repo Repository, uploader Uploader) *Service {
	return &Service{repo: repo, uploader: uploader}
}

// Upload pushes the file bytes to the object store and records the document
// metadata for the owner. The stored key, not the original filename, is the
// unique handle.
func (s *Service) Upload(ctx context.Context, ownerID, filename string, content io.Reader) (*Document, error) {

	key, err := s.uploader.Upload(ctx, ownerID, filename, content)
	if err != nil {
		return nil, fmt.Errorf("error uploading file: %w", err)
	}

	doc := &Document{
		Filename:    filename,
		S3Key:       key,
		IsEncrypted: true,
		OwnerID:     ownerID,
	}

	doc, err = s.repo.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("error creating document: %w", err)
	}

	return doc, nil
}

// List returns the owner's documents, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]*Document, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}
