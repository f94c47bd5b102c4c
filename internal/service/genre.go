// Package service orchestrates catalog operations on top of the store.
package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/openshelf/openshelf-server/internal/domain"
	domainerrors "github.com/openshelf/openshelf-server/internal/errors"
	"github.com/openshelf/openshelf-server/internal/id"
	"github.com/openshelf/openshelf-server/internal/store"
	"github.com/openshelf/openshelf-server/internal/validation"
)

// GenreService orchestrates genre operations.
type GenreService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewGenreService creates a new genre service.
func NewGenreService(store *store.Store, logger *slog.Logger) *GenreService {
	return &GenreService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// ListGenres returns all genres sorted by name.
func (s *GenreService) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	return s.store.ListGenres(ctx)
}

// GetGenre returns a single genre.
func (s *GenreService) GetGenre(ctx context.Context, id string) (*domain.Genre, error) {
	return s.store.GetGenre(ctx, id)
}

// GenreWithBooks fetches a genre and the books referencing it. The two
// lookups are independent, so they run concurrently and are joined before
// returning; if either fails the whole operation fails.
//
// With resolveGenres set, each book's genre references are resolved into
// full records (used by the delete confirmation page).
func (s *GenreService) GenreWithBooks(ctx context.Context, genreID string, resolveGenres bool) (*domain.Genre, []*domain.Book, error) {
	var (
		genre *domain.Genre
		books []*domain.Book
	)

	// Wait cancels the group context even on success, so the resolve loop
	// below must keep running on the caller's context.
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		genre, err = s.store.GetGenre(gctx, genreID)
		return err
	})
	eg.Go(func() error {
		var err error
		books, err = s.store.ListBooksByGenre(gctx, genreID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	if resolveGenres {
		for _, b := range books {
			resolved, err := s.store.GetGenresByIDs(ctx, b.GenreIDs)
			if err != nil {
				return nil, nil, err
			}
			b.Genres = resolved
		}
	}

	return genre, books, nil
}

// CreateGenreRequest contains fields for creating a genre. The name is
// expected to arrive trimmed and sanitized from the form layer.
type CreateGenreRequest struct {
	Name string `form:"name" validate:"required,min=3,max=100"`
}

// CreateGenre creates a new genre, or returns the existing one when a genre
// with the same name (case-insensitive) already exists. The second return
// value reports whether a record was actually created.
func (s *GenreService) CreateGenre(ctx context.Context, req CreateGenreRequest) (*domain.Genre, bool, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, false, err
	}

	// Idempotent create: a matching name means the genre already exists.
	existing, err := s.store.GetGenreByName(ctx, req.Name)
	if err == nil {
		return existing, false, nil
	}
	if !store.IsNotFound(err) {
		return nil, false, err
	}

	genreID, err := id.Generate("gen")
	if err != nil {
		return nil, false, err
	}

	g := &domain.Genre{
		Record: domain.Record{ID: genreID},
		Name:   req.Name,
	}
	g.InitTimestamps()

	if err := s.store.CreateGenre(ctx, g); err != nil {
		// Lost a create race on the same name; fall back to the winner.
		if store.IsAlreadyExists(err) {
			winner, lookupErr := s.store.GetGenreByName(ctx, req.Name)
			if lookupErr == nil {
				return winner, false, nil
			}
		}
		return nil, false, err
	}

	s.logger.Info("genre created", "id", genreID, "name", req.Name)
	return g, true, nil
}

// UpdateGenreRequest contains fields for updating a genre.
type UpdateGenreRequest struct {
	Name string `form:"name" validate:"required,min=3,max=100"`
}

// UpdateGenre renames a genre in place. The identifier is carried through
// explicitly so the update never creates a second record.
func (s *GenreService) UpdateGenre(ctx context.Context, genreID string, req UpdateGenreRequest) (*domain.Genre, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	g, err := s.store.GetGenre(ctx, genreID)
	if err != nil {
		return nil, err
	}

	g.Name = req.Name
	g.Touch()

	if err := s.store.UpdateGenre(ctx, g); err != nil {
		// Renaming onto another genre's name reads as a form mistake, not a
		// server fault.
		if store.IsAlreadyExists(err) {
			return nil, domainerrors.ValidationWithDetails("name already in use",
				[]validation.FieldError{{Field: "name", Message: "is already used by another genre"}})
		}
		return nil, err
	}

	s.logger.Info("genre updated", "id", genreID, "name", req.Name)
	return g, nil
}

// DeleteGenre removes a genre if no books reference it. Returns
// store.ErrGenreInUse while references exist; the caller re-presents the
// confirmation page in that case.
//
// The reference check and the delete run in separate transactions, so a book
// tagged in between can be orphaned. The original design accepts this race;
// reads tolerate dangling references.
func (s *GenreService) DeleteGenre(ctx context.Context, genreID string) error {
	count, err := s.store.CountBooksForGenre(ctx, genreID)
	if err != nil {
		return err
	}
	if count > 0 {
		return store.ErrGenreInUse
	}

	if err := s.store.DeleteGenre(ctx, genreID); err != nil {
		return err
	}

	s.logger.Info("genre deleted", "id", genreID)
	return nil
}
