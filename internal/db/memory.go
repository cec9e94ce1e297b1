package db

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"bookcatalog/internal/models"
)

var _ Repository = (*MemoryStore)(nil)

type MemoryStore struct {
	mu    sync.RWMutex
	books []models.Book
}

func NewMemoryStore(seed ...models.Book) *MemoryStore {
	return &MemoryStore{books: append([]models.Book(nil), seed...)}
}

func (s *MemoryStore) List(_ context.Context) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(make([]models.Book, 0, len(s.books)), s.books...), nil
}

func (s *MemoryStore) Create(_ context.Context, draft models.Draft) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book := draft.Book(uuid.NewString())
	s.books = append(s.books, book)
	return book, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = lo.Reject(s.books, func(b models.Book, _ int) bool { return b.ID == id })
	return nil
}

func (s *MemoryStore) Search(_ context.Context, author, title string) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	author = strings.ToLower(author)
	title = strings.ToLower(title)

	found := lo.Filter(s.books, func(b models.Book, _ int) bool {
		return strings.Contains(strings.ToLower(b.Author), author) &&
			strings.Contains(strings.ToLower(b.Title), title)
	})
	return append(make([]models.Book, 0, len(found)), found...), nil
}
