package registry

import (
	"embed"
	"encoding/json"
	"fmt"

	"secadmin/internal/admin/model"
)

//go:embed pages.json
var pagesFS embed.FS

// Registry holds the fixed catalog of protected pages. The catalog is
// embedded at build time and static for the process lifetime.
type Registry struct {
	pages  []model.Page
	byPath map[string]model.Page
}

func New() (*Registry, error) {
	data, err := pagesFS.ReadFile("pages.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read pages.json: %w", err)
	}

	var pages []model.Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("failed to parse pages.json: %w", err)
	}

	byPath := make(map[string]model.Page, len(pages))
	for _, p := range pages {
		if _, dup := byPath[p.Path]; dup {
			return nil, fmt.Errorf("duplicate page path %q in pages.json", p.Path)
		}
		byPath[p.Path] = p
	}

	return &Registry{pages: pages, byPath: byPath}, nil
}

// ListResources returns the catalog in declaration order.
func (r *Registry) ListResources() []model.Page {
	out := make([]model.Page, len(r.pages))
	copy(out, r.pages)
	return out
}

// Lookup returns the page for a path, if registered.
func (r *Registry) Lookup(path string) (model.Page, bool) {
	p, ok := r.byPath[path]
	return p, ok
}
