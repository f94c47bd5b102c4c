package domain

// Book represents a catalog entry that may reference any number of genres.
// Books are owned by the book controller; the genre pages only read them to
// show usage and to block genre deletion while references exist.
type Book struct {
	Record
	Title    string   `json:"title"`
	Summary  string   `json:"summary,omitempty"`
	GenreIDs []string `json:"genre_ids,omitempty"`

	// Genres holds the resolved genre records when a query asks for them.
	// Never persisted; populated by the service layer.
	Genres []*Genre `json:"genres,omitempty"`
}

// URL returns the canonical catalog path for this book's detail page.
func (b *Book) URL() string {
	return "/catalog/book/" + b.ID
}

// HasGenre reports whether the book references the given genre ID.
func (b *Book) HasGenre(genreID string) bool {
	for _, id := range b.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}
