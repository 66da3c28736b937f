package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRegistry(t *testing.T) {
	reg, err := New()
	assert.NoError(t, err)
	assert.NotNil(t, reg)
	assert.NotEmpty(t, reg.ListResources())
}

func TestCatalogEntries(t *testing.T) {
	reg, err := New()
	assert.NoError(t, err)

	pages := reg.ListResources()
	seen := map[string]bool{}
	for _, p := range pages {
		assert.True(t, strings.HasPrefix(p.Path, "/"), "path %q must start with /", p.Path)
		assert.NotEmpty(t, p.Name, "page %q must have a display name", p.Path)
		assert.False(t, seen[p.Path], "duplicate path %q", p.Path)
		seen[p.Path] = true
	}

	t.Run("lookup known path", func(t *testing.T) {
		p, ok := reg.Lookup("/autorisations/configuration-permissions")
		assert.True(t, ok)
		assert.Equal(t, "Configuration des permissions", p.Name)
	})

	t.Run("lookup unknown path", func(t *testing.T) {
		_, ok := reg.Lookup("/nope")
		assert.False(t, ok)
	})
}
