package db

import (
	"context"

	"bookcatalog/internal/models"
)

// Repository stores catalog books. Books come back in insertion order.
type Repository interface {
	List(ctx context.Context) ([]models.Book, error)
	Create(ctx context.Context, draft models.Draft) (models.Book, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
	// Search matches author and title case-insensitively by substring. An empty filter matches everything.
	Search(ctx context.Context, author, title string) ([]models.Book, error)
}
