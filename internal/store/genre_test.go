package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf-server/internal/domain"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "store-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := New(dbPath, nil)
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

// Helper function to create a test genre
func createTestGenre(id, name string) *domain.Genre {
	g := &domain.Genre{
		Record: domain.Record{ID: id},
		Name:   name,
	}
	g.InitTimestamps()
	return g
}

// TestCreateGenre tests creating a new genre
func TestCreateGenre(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	err := s.CreateGenre(ctx, createTestGenre("gen-001", "Fantasy"))
	require.NoError(t, err)

	retrieved, err := s.GetGenre(ctx, "gen-001")
	require.NoError(t, err)
	assert.Equal(t, "gen-001", retrieved.ID)
	assert.Equal(t, "Fantasy", retrieved.Name)
	assert.Equal(t, "/catalog/genre/gen-001", retrieved.URL())
}

// TestCreateGenre_DuplicateName tests that a case-insensitive duplicate is rejected
func TestCreateGenre_DuplicateName(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateGenre(ctx, createTestGenre("gen-001", "Fantasy")))

	err := s.CreateGenre(ctx, createTestGenre("gen-002", "fantasy"))
	assert.ErrorIs(t, err, ErrGenreExists)

	// The losing record must not exist.
	_, err = s.GetGenre(ctx, "gen-002")
	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestGetGenre_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetGenre(context.Background(), "gen-missing")
	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestGetGenreByName_CaseInsensitive(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateGenre(ctx, createTestGenre("gen-001", "Fantasy")))

	got, err := s.GetGenreByName(ctx, "FANTASY")
	require.NoError(t, err)
	assert.Equal(t, "gen-001", got.ID)

	_, err = s.GetGenreByName(ctx, "Horror")
	assert.ErrorIs(t, err, ErrGenreNotFound)
}

// TestListGenres_Ordering tests that listing sorts by name regardless of insertion order
func TestListGenres_Ordering(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateGenre(ctx, createTestGenre("gen-001", "Zeta")))
	require.NoError(t, s.CreateGenre(ctx, createTestGenre("gen-002", "Alpha")))

	genres, err := s.ListGenres(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "Alpha", genres[0].Name)
	assert.Equal(t, "Zeta", genres[1].Name)
}

// TestUpdateGenre tests renaming a genre in place
func TestUpdateGenre(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	g := createTestGenre("gen-001", "Fantasy")
	require.NoError(t, s.CreateGenre(ctx, g))

	g.Name = "High Fantasy"
	g.Touch()
	require.NoError(t, s.UpdateGenre(ctx, g))

	retrieved, err := s.GetGenre(ctx, "gen-001")
	require.NoError(t, err)
	assert.Equal(t, "High Fantasy", retrieved.Name)

	// Index moved with the rename.
	_, err = s.GetGenreByName(ctx, "Fantasy")
	assert.ErrorIs(t, err, ErrGenreNotFound)

	byName, err := s.GetGenreByName(ctx, "high fantasy")
	require.NoError(t, err)
	assert.Equal(t, "gen-001", byName.ID)
}

func TestUpdateGenre_NameTaken(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateGenre(ctx, createTestGenre("gen-001", "Fantasy")))
	horror := createTestGenre("gen-002", "Horror")
	require.NoError(t, s.CreateGenre(ctx, horror))

	horror.Name = "FANTASY"
	err := s.UpdateGenre(ctx, horror)
	assert.ErrorIs(t, err, ErrGenreExists)
}

func TestUpdateGenre_CaseOnlyRename(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	g := createTestGenre("gen-001", "fantasy")
	require.NoError(t, s.CreateGenre(ctx, g))

	// Same identity, different display casing.
	g.Name = "Fantasy"
	require.NoError(t, s.UpdateGenre(ctx, g))

	retrieved, err := s.GetGenre(ctx, "gen-001")
	require.NoError(t, err)
	assert.Equal(t, "Fantasy", retrieved.Name)
}

// TestDeleteGenre tests removing a genre and its name index
func TestDeleteGenre(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateGenre(ctx, createTestGenre("gen-001", "Fantasy")))

	require.NoError(t, s.DeleteGenre(ctx, "gen-001"))

	_, err := s.GetGenre(ctx, "gen-001")
	assert.ErrorIs(t, err, ErrGenreNotFound)

	_, err = s.GetGenreByName(ctx, "Fantasy")
	assert.ErrorIs(t, err, ErrGenreNotFound)

	// The name is free for reuse after deletion.
	require.NoError(t, s.CreateGenre(ctx, createTestGenre("gen-002", "Fantasy")))
}

func TestDeleteGenre_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	err := s.DeleteGenre(context.Background(), "gen-missing")
	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestSeedSampleData(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.SeedSampleData(ctx))

	genres, err := s.ListGenres(ctx)
	require.NoError(t, err)
	assert.Len(t, genres, len(SampleGenres))

	books, err := s.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, len(SampleBooks))

	// Seeding twice must not duplicate anything.
	require.NoError(t, s.SeedSampleData(ctx))
	genres, err = s.ListGenres(ctx)
	require.NoError(t, err)
	assert.Len(t, genres, len(SampleGenres))
}
