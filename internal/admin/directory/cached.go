package directory

import (
	"context"
	"time"

	"secadmin/internal/admin/model"

	gocache "github.com/patrickmn/go-cache"
)

const principalsKey = "principals"

// Cached wraps a Source with a TTL cache so repeated grid loads do not
// hammer the directory. A failed fetch is never cached.
type Cached struct {
	inner Source
	c     *gocache.Cache
}

func NewCached(inner Source, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		c:     gocache.New(ttl, time.Minute),
	}
}

func (s *Cached) ListPrincipals(ctx context.Context) ([]model.User, error) {
	if v, ok := s.c.Get(principalsKey); ok {
		users, _ := v.([]model.User)
		return users, nil
	}

	users, err := s.inner.ListPrincipals(ctx)
	if err != nil {
		return nil, err
	}
	s.c.SetDefault(principalsKey, users)
	return users, nil
}

// Invalidate drops the cached listing, forcing the next call through.
func (s *Cached) Invalidate() {
	s.c.Delete(principalsKey)
}
