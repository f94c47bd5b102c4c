// Package domain defines the entities stored in the catalog.
package domain

// Genre represents a named classification that books reference.
// Genre names are unique under case-insensitive comparison; the store
// enforces this via a folded-name index.
type Genre struct {
	Record
	Name string `json:"name"` // Display name: "Science Fiction"
}

// URL returns the canonical catalog path for this genre's detail page.
func (g *Genre) URL() string {
	return "/catalog/genre/" + g.ID
}
