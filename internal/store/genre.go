package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/openshelf/openshelf-server/internal/catalog"
	"github.com/openshelf/openshelf-server/internal/domain"
)

// Key prefixes for genre storage.
const (
	genrePrefix       = "genre:"
	genreByNamePrefix = "idx:genre:name:" // folded name -> genre ID
)

// Genre errors.
var (
	ErrGenreNotFound = errors.New("genre not found")
	ErrGenreExists   = errors.New("genre already exists")
	ErrGenreInUse    = errors.New("genre is referenced by books")
)

// CreateGenre creates a new genre. The folded-name index is written in the
// same transaction as the record, so two concurrent creates of the same name
// cannot both succeed.
func (s *Store) CreateGenre(ctx context.Context, g *domain.Genre) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(genrePrefix + g.ID)
	nameKey := []byte(genreByNamePrefix + catalog.NormalizeName(g.Name))

	return s.db.Update(func(txn *badger.Txn) error {
		// Check if already exists.
		if _, err := txn.Get(key); err == nil {
			return ErrGenreExists
		}
		if _, err := txn.Get(nameKey); err == nil {
			return ErrGenreExists
		}

		// Store genre.
		data, err := json.Marshal(g)
		if err != nil {
			return fmt.Errorf("marshal genre: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}

		// Create name index.
		return txn.Set(nameKey, []byte(g.ID))
	})
}

// GetGenre retrieves a genre by ID.
func (s *Store) GetGenre(ctx context.Context, id string) (*domain.Genre, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var g domain.Genre
	key := []byte(genrePrefix + id)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrGenreNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &g)
		})
	})

	if err != nil {
		return nil, err
	}

	return &g, nil
}

// GetGenresByIDs retrieves multiple genres by their IDs.
// Missing genres are silently skipped; a book may carry a dangling genre
// reference after the race the delete path accepts.
func (s *Store) GetGenresByIDs(ctx context.Context, ids []string) ([]*domain.Genre, error) {
	genres := make([]*domain.Genre, 0, len(ids))

	for _, id := range ids {
		g, err := s.GetGenre(ctx, id)
		if err != nil {
			if errors.Is(err, ErrGenreNotFound) {
				continue // Skip missing genres
			}
			return nil, err
		}
		genres = append(genres, g)
	}

	return genres, nil
}

// GetGenreByName retrieves a genre whose name matches under case-insensitive
// comparison.
func (s *Store) GetGenreByName(ctx context.Context, name string) (*domain.Genre, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var genreID string
	nameKey := []byte(genreByNamePrefix + catalog.NormalizeName(name))

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(nameKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrGenreNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			genreID = string(val)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return s.GetGenre(ctx, genreID)
}

// ListGenres returns all genres sorted by name in ascending code-point order.
func (s *Store) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var genres []*domain.Genre
	prefix := []byte(genrePrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var g domain.Genre
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &g)
			})
			if err != nil {
				continue
			}
			genres = append(genres, &g)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	slices.SortFunc(genres, func(a, b *domain.Genre) int {
		return strings.Compare(a.Name, b.Name)
	})

	return genres, nil
}

// UpdateGenre updates a genre in place, preserving its ID. If the rename
// changes the folded name, the name index moves with it; renaming onto
// another genre's name fails with ErrGenreExists.
func (s *Store) UpdateGenre(ctx context.Context, g *domain.Genre) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Get old genre for index updates.
	old, err := s.GetGenre(ctx, g.ID)
	if err != nil {
		return err
	}

	oldFolded := catalog.NormalizeName(old.Name)
	newFolded := catalog.NormalizeName(g.Name)

	return s.db.Update(func(txn *badger.Txn) error {
		// Update name index if the identity changed.
		if oldFolded != newFolded {
			newNameKey := []byte(genreByNamePrefix + newFolded)
			if item, err := txn.Get(newNameKey); err == nil {
				var ownerID string
				_ = item.Value(func(val []byte) error {
					ownerID = string(val)
					return nil
				})
				if ownerID != g.ID {
					return ErrGenreExists
				}
			}

			oldNameKey := []byte(genreByNamePrefix + oldFolded)
			if err := txn.Delete(oldNameKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			if err := txn.Set(newNameKey, []byte(g.ID)); err != nil {
				return err
			}
		}

		// Update main record.
		data, err := json.Marshal(g)
		if err != nil {
			return err
		}
		return txn.Set([]byte(genrePrefix+g.ID), data)
	})
}

// DeleteGenre removes a genre and its indexes. Callers are expected to have
// checked for referencing books first; any index entries left behind by that
// race are cleaned up here.
func (s *Store) DeleteGenre(ctx context.Context, id string) error {
	g, err := s.GetGenre(ctx, id)
	if err != nil {
		return err
	}

	// Gather leftover genre->book index entries outside the write txn.
	bookKeys, err := s.collectKeys(genreBookPrefix + id + ":")
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(genrePrefix + id)); err != nil {
			return err
		}

		nameKey := []byte(genreByNamePrefix + catalog.NormalizeName(g.Name))
		if err := txn.Delete(nameKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		for _, key := range bookKeys {
			bookID := strings.TrimPrefix(key, genreBookPrefix+id+":")
			if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			reverse := []byte(bookGenrePrefix + bookID + ":" + id)
			if err := txn.Delete(reverse); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}

		return nil
	})
}
