package ports

import (
	"context"
	"time"

	"bookmarked/internal/domain"
)

// DocumentStore persists a whole bookmark document
type DocumentStore interface {
	// Load returns the stored document, or an empty one if nothing was saved yet
	Load(ctx context.Context) (*domain.Document, error)

	// Save replaces the stored document atomically
	Save(ctx context.Context, doc *domain.Document) error

	Close() error
}

// Codec converts a document to and from its serialized form
type Codec interface {
	Marshal(doc *domain.Document) ([]byte, error)
	Unmarshal(data []byte) (*domain.Document, error)
}

// SaveStamper is implemented by stores that record when they were last written,
// so a reader can tell whether another process saved since it loaded.
type SaveStamper interface {
	SavedAt(ctx context.Context) (time.Time, error)
}
