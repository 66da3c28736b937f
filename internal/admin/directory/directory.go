package directory

import (
	"context"
	"errors"

	"secadmin/internal/admin/model"
)

// ErrUnavailable signals a transport or auth failure against the user
// directory. Callers treat it as a whole-load failure, never a partial one.
var ErrUnavailable = errors.New("directory unavailable")

// Source supplies the current set of principals eligible for permission
// assignment. Implementations must return ErrUnavailable (wrapped or not)
// on transport errors.
type Source interface {
	ListPrincipals(ctx context.Context) ([]model.User, error)
}
