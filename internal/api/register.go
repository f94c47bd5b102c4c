package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/openshelf/openshelf-server/internal/domain"
	"github.com/openshelf/openshelf-server/internal/service"
)

// Handler holds the services backing the JSON API.
type Handler struct {
	genres *service.GenreService
	books  *service.BookService
}

// Register wires the catalog read endpoints onto a huma API.
func Register(api huma.API, genres *service.GenreService, books *service.BookService) {
	h := &Handler{genres: genres, books: books}

	huma.Register(api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status",
		Tags:        []string{"Health"},
	}, h.handleHealthCheck)

	huma.Register(api, huma.Operation{
		OperationID: "listGenres",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres",
		Summary:     "List genres",
		Description: "Returns all genres ordered by name",
		Tags:        []string{"Genres"},
	}, h.handleListGenres)

	huma.Register(api, huma.Operation{
		OperationID: "getGenre",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres/{id}",
		Summary:     "Get genre",
		Description: "Returns a genre by ID together with the books referencing it",
		Tags:        []string{"Genres"},
	}, h.handleGetGenre)

	huma.Register(api, huma.Operation{
		OperationID: "getGenreBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres/{id}/books",
		Summary:     "Get genre books",
		Description: "Returns the books referencing a genre",
		Tags:        []string{"Genres"},
	}, h.handleGetGenreBooks)

	huma.Register(api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns all books ordered by title",
		Tags:        []string{"Books"},
	}, h.handleListBooks)
}

// === DTOs ===

type HealthOutput struct {
	Body struct {
		Status string `json:"status" doc:"Server health status"`
	}
}

type GenreResponse struct {
	ID        string    `json:"id" doc:"Genre ID"`
	Name      string    `json:"name" doc:"Genre name"`
	URL       string    `json:"url" doc:"Catalog page for this genre"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

type BookResponse struct {
	ID       string   `json:"id" doc:"Book ID"`
	Title    string   `json:"title" doc:"Book title"`
	Summary  string   `json:"summary,omitempty" doc:"Book summary"`
	URL      string   `json:"url" doc:"Catalog page for this book"`
	GenreIDs []string `json:"genre_ids,omitempty" doc:"Genres the book references"`
}

type ListGenresOutput struct {
	Body struct {
		Genres []GenreResponse `json:"genres" doc:"List of genres"`
	}
}

type GetGenreInput struct {
	ID string `path:"id" doc:"Genre ID"`
}

type GenreDetailOutput struct {
	Body struct {
		Genre GenreResponse  `json:"genre" doc:"The genre"`
		Books []BookResponse `json:"books" doc:"Books referencing the genre"`
	}
}

type GenreBooksOutput struct {
	Body struct {
		Books []BookResponse `json:"books" doc:"Books referencing the genre"`
	}
}

type ListBooksOutput struct {
	Body struct {
		Books []BookResponse `json:"books" doc:"List of books"`
	}
}

// === Handlers ===

func (h *Handler) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{}
	out.Body.Status = "healthy"
	return out, nil
}

func (h *Handler) handleListGenres(ctx context.Context, _ *struct{}) (*ListGenresOutput, error) {
	genres, err := h.genres.ListGenres(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListGenresOutput{}
	out.Body.Genres = make([]GenreResponse, len(genres))
	for i, g := range genres {
		out.Body.Genres[i] = mapGenreResponse(g)
	}
	return out, nil
}

func (h *Handler) handleGetGenre(ctx context.Context, input *GetGenreInput) (*GenreDetailOutput, error) {
	genre, books, err := h.genres.GenreWithBooks(ctx, input.ID, false)
	if err != nil {
		return nil, err
	}

	out := &GenreDetailOutput{}
	out.Body.Genre = mapGenreResponse(genre)
	out.Body.Books = mapBookResponses(books)
	return out, nil
}

func (h *Handler) handleGetGenreBooks(ctx context.Context, input *GetGenreInput) (*GenreBooksOutput, error) {
	// Fetch the genre too so unknown IDs surface as 404 rather than an
	// empty list.
	if _, err := h.genres.GetGenre(ctx, input.ID); err != nil {
		return nil, err
	}

	books, err := h.books.ListBooksByGenre(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	out := &GenreBooksOutput{}
	out.Body.Books = mapBookResponses(books)
	return out, nil
}

func (h *Handler) handleListBooks(ctx context.Context, _ *struct{}) (*ListBooksOutput, error) {
	books, err := h.books.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListBooksOutput{}
	out.Body.Books = mapBookResponses(books)
	return out, nil
}

// === Mappers ===

func mapGenreResponse(g *domain.Genre) GenreResponse {
	return GenreResponse{
		ID:        g.ID,
		Name:      g.Name,
		URL:       g.URL(),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func mapBookResponses(books []*domain.Book) []BookResponse {
	resp := make([]BookResponse, len(books))
	for i, b := range books {
		resp[i] = BookResponse{
			ID:       b.ID,
			Title:    b.Title,
			Summary:  b.Summary,
			URL:      b.URL(),
			GenreIDs: b.GenreIDs,
		}
	}
	return resp
}
