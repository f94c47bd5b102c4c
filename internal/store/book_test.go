package store

import (
	"context"
	"encoding/json/v2"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf-server/internal/domain"
)

// Helper function to create a test book
func createTestBook(id, title string, genreIDs ...string) *domain.Book {
	b := &domain.Book{
		Record:   domain.Record{ID: id},
		Title:    title,
		Summary:  "Summary of " + title,
		GenreIDs: genreIDs,
	}
	b.InitTimestamps()
	return b
}

func TestCreateBook(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateGenre(ctx, createTestGenre("gen-001", "Fantasy")))

	err := s.CreateBook(ctx, createTestBook("book-001", "The Name of the Wind", "gen-001"))
	require.NoError(t, err)

	retrieved, err := s.GetBook(ctx, "book-001")
	require.NoError(t, err)
	assert.Equal(t, "The Name of the Wind", retrieved.Title)
	assert.Equal(t, []string{"gen-001"}, retrieved.GenreIDs)
}

func TestCreateBook_Duplicate(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateBook(ctx, createTestBook("book-001", "A Title")))

	err := s.CreateBook(ctx, createTestBook("book-001", "A Title"))
	assert.ErrorIs(t, err, ErrBookExists)
}

func TestGetBook_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetBook(context.Background(), "book-missing")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestListBooksByGenre(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateGenre(ctx, createTestGenre("gen-001", "Fantasy")))
	require.NoError(t, s.CreateGenre(ctx, createTestGenre("gen-002", "Horror")))

	require.NoError(t, s.CreateBook(ctx, createTestBook("book-001", "Zeta Book", "gen-001")))
	require.NoError(t, s.CreateBook(ctx, createTestBook("book-002", "Alpha Book", "gen-001", "gen-002")))
	require.NoError(t, s.CreateBook(ctx, createTestBook("book-003", "Unrelated", "gen-002")))

	books, err := s.ListBooksByGenre(ctx, "gen-001")
	require.NoError(t, err)
	require.Len(t, books, 2)
	// Sorted by title.
	assert.Equal(t, "Alpha Book", books[0].Title)
	assert.Equal(t, "Zeta Book", books[1].Title)

	count, err := s.CountBooksForGenre(ctx, "gen-001")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestListBooksByGenre_SkipsBooksNoLongerReferencing(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateGenre(ctx, createTestGenre("gen-001", "Fantasy")))
	require.NoError(t, s.CreateGenre(ctx, createTestGenre("gen-002", "Horror")))
	require.NoError(t, s.CreateBook(ctx, createTestBook("book-001", "A Title", "gen-001", "gen-002")))

	// Rewrite the record without the first genre, leaving its index key
	// behind.
	stale := createTestBook("book-001", "A Title", "gen-002")
	data, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(bookPrefix+stale.ID), data)
	}))

	books, err := s.ListBooksByGenre(ctx, "gen-001")
	require.NoError(t, err)
	assert.Empty(t, books)

	books, err = s.ListBooksByGenre(ctx, "gen-002")
	require.NoError(t, err)
	require.Len(t, books, 1)
}

func TestListBooksByGenre_Empty(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateGenre(ctx, createTestGenre("gen-001", "Fantasy")))

	books, err := s.ListBooksByGenre(ctx, "gen-001")
	require.NoError(t, err)
	assert.Empty(t, books)

	count, err := s.CountBooksForGenre(ctx, "gen-001")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteGenre_CleansBookIndexes(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateGenre(ctx, createTestGenre("gen-001", "Fantasy")))
	require.NoError(t, s.CreateBook(ctx, createTestBook("book-001", "A Title", "gen-001")))

	require.NoError(t, s.DeleteGenre(ctx, "gen-001"))

	count, err := s.CountBooksForGenre(ctx, "gen-001")
	require.NoError(t, err)
	assert.Zero(t, count)

	// The book record itself survives with a dangling reference.
	b, err := s.GetBook(ctx, "book-001")
	require.NoError(t, err)
	assert.Equal(t, []string{"gen-001"}, b.GenreIDs)
}
