package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/openshelf/openshelf-server/internal/domain"
)

// Key prefixes for book storage.
const (
	bookPrefix      = "book:"
	genreBookPrefix = "idx:genre:book:" // genreID:bookID -> empty
	bookGenrePrefix = "idx:book:genre:" // bookID:genreID -> empty
)

// Book errors.
var (
	ErrBookNotFound = errors.New("book not found")
	ErrBookExists   = errors.New("book already exists")
)

// CreateBook creates a new book and its genre index entries in one
// transaction.
func (s *Store) CreateBook(ctx context.Context, b *domain.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(bookPrefix + b.ID)

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return ErrBookExists
		}

		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("marshal book: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}

		for _, genreID := range b.GenreIDs {
			gbKey := []byte(genreBookPrefix + genreID + ":" + b.ID)
			if err := txn.Set(gbKey, []byte{}); err != nil {
				return err
			}
			bgKey := []byte(bookGenrePrefix + b.ID + ":" + genreID)
			if err := txn.Set(bgKey, []byte{}); err != nil {
				return err
			}
		}

		return nil
	})
}

// GetBook retrieves a book by ID.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b domain.Book
	err := s.get([]byte(bookPrefix+id), &b)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// ListBooks returns all books sorted by title.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var books []*domain.Book
	prefix := []byte(bookPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var b domain.Book
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &b)
			})
			if err != nil {
				continue
			}
			books = append(books, &b)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	slices.SortFunc(books, func(a, b *domain.Book) int {
		return strings.Compare(a.Title, b.Title)
	})

	return books, nil
}

// ListBooksByGenre returns all books referencing the given genre, sorted by
// title.
func (s *Store) ListBooksByGenre(ctx context.Context, genreID string) ([]*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := genreBookPrefix + genreID + ":"
	keys, err := s.collectKeys(prefix)
	if err != nil {
		return nil, err
	}

	books := make([]*domain.Book, 0, len(keys))
	for _, key := range keys {
		bookID := strings.TrimPrefix(key, prefix)
		b, err := s.GetBook(ctx, bookID)
		if err != nil {
			if errors.Is(err, ErrBookNotFound) {
				continue // Stale index entry
			}
			return nil, err
		}
		if !b.HasGenre(genreID) {
			continue // Index key outlived the reference
		}
		books = append(books, b)
	}

	slices.SortFunc(books, func(a, b *domain.Book) int {
		return strings.Compare(a.Title, b.Title)
	})

	return books, nil
}

// CountBooksForGenre returns the number of books referencing a genre. Only
// the index keys are read, not the book records.
func (s *Store) CountBooksForGenre(ctx context.Context, genreID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	keys, err := s.collectKeys(genreBookPrefix + genreID + ":")
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
