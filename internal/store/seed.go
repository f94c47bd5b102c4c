package store

import (
	"context"
	"fmt"

	"github.com/openshelf/openshelf-server/internal/domain"
	"github.com/openshelf/openshelf-server/internal/id"
)

// GenreSeed describes a genre to create during seeding.
type GenreSeed struct {
	Name string
}

// BookSeed describes a book to create during seeding. Genres are referenced
// by name and resolved against the seeded genres.
type BookSeed struct {
	Title      string
	Summary    string
	GenreNames []string
}

// SampleGenres is the starter genre set loaded by the seed tool.
var SampleGenres = []GenreSeed{
	{Name: "Fantasy"},
	{Name: "Science Fiction"},
	{Name: "French Poetry"},
}

// SampleBooks is the starter book set loaded by the seed tool.
var SampleBooks = []BookSeed{
	{
		Title:      "The Name of the Wind",
		Summary:    "The tale of the magically gifted Kvothe, from his childhood in a troupe of traveling players to years as a near-feral orphan.",
		GenreNames: []string{"Fantasy"},
	},
	{
		Title:      "The Wise Man's Fear",
		Summary:    "Kvothe takes his first steps on the path of the hero and learns how difficult life can be when a man becomes a legend in his own time.",
		GenreNames: []string{"Fantasy"},
	},
	{
		Title:      "Apes and Angels",
		Summary:    "Humankind headed out to the stars not for conquest, nor exploration, but to save a species from a wave of deadly radiation.",
		GenreNames: []string{"Science Fiction"},
	},
	{
		Title:      "Test Book 1",
		Summary:    "Summary of test book 1.",
		GenreNames: []string{"Fantasy", "Science Fiction"},
	},
}

// SeedSampleData creates the sample genres and books if the database holds
// no genres yet. Safe to call on every startup.
func (s *Store) SeedSampleData(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Check if already seeded.
	genres, err := s.ListGenres(ctx)
	if err != nil {
		return err
	}
	if len(genres) > 0 {
		return nil // Already seeded.
	}

	genreIDsByName := make(map[string]string, len(SampleGenres))

	for _, seed := range SampleGenres {
		genreID, err := id.Generate("gen")
		if err != nil {
			return err
		}

		g := &domain.Genre{
			Record: domain.Record{ID: genreID},
			Name:   seed.Name,
		}
		g.InitTimestamps()

		if err := s.CreateGenre(ctx, g); err != nil {
			return fmt.Errorf("create genre %s: %w", seed.Name, err)
		}
		genreIDsByName[seed.Name] = genreID
	}

	for _, seed := range SampleBooks {
		bookID, err := id.Generate("book")
		if err != nil {
			return err
		}

		b := &domain.Book{
			Record:  domain.Record{ID: bookID},
			Title:   seed.Title,
			Summary: seed.Summary,
		}
		for _, name := range seed.GenreNames {
			genreID, ok := genreIDsByName[name]
			if !ok {
				return fmt.Errorf("book %s references unknown genre %s", seed.Title, name)
			}
			b.GenreIDs = append(b.GenreIDs, genreID)
		}
		b.InitTimestamps()

		if err := s.CreateBook(ctx, b); err != nil {
			return fmt.Errorf("create book %s: %w", seed.Title, err)
		}
	}

	if s.logger != nil {
		s.logger.Info("Seeded sample catalog data",
			"genres", len(SampleGenres),
			"books", len(SampleBooks),
		)
	}

	return nil
}
