package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openshelf/openshelf-server/internal/domain"
	"github.com/openshelf/openshelf-server/internal/sanitize"
	"github.com/openshelf/openshelf-server/internal/service"
	"github.com/openshelf/openshelf-server/internal/store"
	"github.com/openshelf/openshelf-server/internal/validation"
)

// === View models ===

// genreListView is the data for the genre list page.
type genreListView struct {
	Title  string
	Genres []*domain.Genre
}

// genreDetailView is the data for the genre detail page.
type genreDetailView struct {
	Title string
	Genre *domain.Genre
	Books []*domain.Book
}

// genreFormView is the data for the create/update form page. Name carries
// the user's (sanitized) submission back into the input on validation
// failure; the form posts back to its own URL, so the update path needs no
// identifier field.
type genreFormView struct {
	Title  string
	Name   string
	Errors []validation.FieldError
}

// genreDeleteView is the data for the delete confirmation page.
type genreDeleteView struct {
	Title string
	Genre *domain.Genre
	Books []*domain.Book
}

// errorView is the data for the generic error page.
type errorView struct {
	Title   string
	Message string
}

// === Handlers ===

// handleGenreList renders all genres ordered by name.
// GET /catalog/genres
func (s *Server) handleGenreList(w http.ResponseWriter, r *http.Request) {
	genres, err := s.services.Genre.ListGenres(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.renderer.Render(w, http.StatusOK, "genre_list", genreListView{
		Title:  "Genre List",
		Genres: genres,
	})
}

// handleGenreDetail renders a genre and the books referencing it.
// GET /catalog/genre/{id}
func (s *Server) handleGenreDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	genre, books, err := s.services.Genre.GenreWithBooks(r.Context(), id, false)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.renderer.Render(w, http.StatusOK, "genre_detail", genreDetailView{
		Title: "Genre Detail",
		Genre: genre,
		Books: books,
	})
}

// handleGenreCreateForm renders an empty genre form.
// GET /catalog/genre/create
func (s *Server) handleGenreCreateForm(w http.ResponseWriter, _ *http.Request) {
	s.renderer.Render(w, http.StatusOK, "genre_form", genreFormView{
		Title: "Create Genre",
	})
}

// handleGenreCreate validates the submitted name and creates the genre.
// A name matching an existing genre case-insensitively redirects to that
// genre instead of inserting a duplicate. Validation failures re-render the
// form with HTTP 200.
// POST /catalog/genre/create
func (s *Server) handleGenreCreate(w http.ResponseWriter, r *http.Request) {
	name := sanitize.Text(r.PostFormValue("name"))

	genre, _, err := s.services.Genre.CreateGenre(r.Context(), service.CreateGenreRequest{Name: name})
	if err != nil {
		if fields := validation.FieldErrors(err); fields != nil {
			s.renderer.Render(w, http.StatusOK, "genre_form", genreFormView{
				Title:  "Create Genre",
				Name:   name,
				Errors: fields,
			})
			return
		}
		s.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, genre.URL(), http.StatusSeeOther)
}

// handleGenreDeleteForm renders the delete confirmation page with the books
// that still reference the genre. An unknown genre redirects to the list
// with no error surfaced.
// GET /catalog/genre/{id}/delete
func (s *Server) handleGenreDeleteForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	genre, books, err := s.services.Genre.GenreWithBooks(r.Context(), id, true)
	if err != nil {
		if store.IsNotFound(err) {
			http.Redirect(w, r, "/catalog/genres", http.StatusFound)
			return
		}
		s.renderError(w, r, err)
		return
	}

	s.renderer.Render(w, http.StatusOK, "genre_delete", genreDeleteView{
		Title: "Delete Genre",
		Genre: genre,
		Books: books,
	})
}

// handleGenreDelete deletes the genre named by the submitted form, unless
// books still reference it, in which case the confirmation page is shown
// again instead.
// POST /catalog/genre/{id}/delete
func (s *Server) handleGenreDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PostFormValue("genreid")

	err := s.services.Genre.DeleteGenre(r.Context(), id)
	if err == nil || store.IsNotFound(err) {
		http.Redirect(w, r, "/catalog/genres", http.StatusSeeOther)
		return
	}

	if errors.Is(err, store.ErrGenreInUse) {
		genre, books, ferr := s.services.Genre.GenreWithBooks(r.Context(), id, true)
		if ferr != nil {
			s.renderError(w, r, ferr)
			return
		}
		s.renderer.Render(w, http.StatusOK, "genre_delete", genreDeleteView{
			Title: "Delete Genre",
			Genre: genre,
			Books: books,
		})
		return
	}

	s.renderError(w, r, err)
}

// handleGenreUpdateForm renders the form pre-populated with the existing
// name.
// GET /catalog/genre/{id}/update
func (s *Server) handleGenreUpdateForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	genre, err := s.services.Genre.GetGenre(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.renderer.Render(w, http.StatusOK, "genre_form", genreFormView{
		Title: "Update Genre",
		Name:  genre.Name,
	})
}

// handleGenreUpdate validates the submitted name and updates the record in
// place, preserving its identifier. Validation failures, including a name
// already used by another genre, re-render the form with HTTP 200.
// POST /catalog/genre/{id}/update
func (s *Server) handleGenreUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name := sanitize.Text(r.PostFormValue("name"))

	genre, err := s.services.Genre.UpdateGenre(r.Context(), id, service.UpdateGenreRequest{Name: name})
	if err != nil {
		if fields := validation.FieldErrors(err); fields != nil {
			s.renderer.Render(w, http.StatusOK, "genre_form", genreFormView{
				Title:  "Update Genre",
				Name:   name,
				Errors: fields,
			})
			return
		}
		s.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, genre.URL(), http.StatusSeeOther)
}

// renderError maps a failure to the generic error page: 404 for missing
// entities, 500 for everything else. Unexpected failures are logged; the
// controller does not retry or recover them.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	if store.IsNotFound(err) {
		s.renderer.Render(w, http.StatusNotFound, "error", errorView{
			Title:   "Not Found",
			Message: err.Error(),
		})
		return
	}

	s.logger.Error("Request failed", "path", r.URL.Path, "error", err)
	s.renderer.Render(w, http.StatusInternalServerError, "error", errorView{
		Title:   "Server Error",
		Message: "Something went wrong handling the request.",
	})
}
