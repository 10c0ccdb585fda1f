package documents

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, doc *Document) (*Document, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Document, error)
}
