package service

import (
	"context"
	"log/slog"

	"github.com/openshelf/openshelf-server/internal/domain"
	"github.com/openshelf/openshelf-server/internal/store"
)

// BookService exposes read access to books. Book mutation belongs to the
// book controller; the genre pages and the JSON API only query.
type BookService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store *store.Store, logger *slog.Logger) *BookService {
	return &BookService{
		store:  store,
		logger: logger,
	}
}

// ListBooks returns all books sorted by title.
func (s *BookService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.store.ListBooks(ctx)
}

// GetBook returns a single book.
func (s *BookService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.store.GetBook(ctx, id)
}

// ListBooksByGenre returns the books referencing a genre.
func (s *BookService) ListBooksByGenre(ctx context.Context, genreID string) ([]*domain.Book, error) {
	return s.store.ListBooksByGenre(ctx, genreID)
}
