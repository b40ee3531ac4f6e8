package directus

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cheatsheethub/cheatsheethub/pkg/cms"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store"
)

// readError maps a failed collection read.
func readError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, store.ErrUnavailable, err)
}

// writeError maps a failed editor operation. When byID is set, a missing or
// invisible item is reported as store.ErrNotFound.
func writeError(op string, err error, byID bool) error {
	var cmsErr *cms.Error
	if !errors.As(err, &cmsErr) {
		return fmt.Errorf("%s: %w: %w", op, store.ErrUnavailable, err)
	}

	switch {
	case cmsErr.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s: %w: %w", op, store.ErrForbidden, err)
	case byID && (cms.IsForbidden(err) || cms.IsNotFound(err)):
		return fmt.Errorf("%s: %w: %w", op, store.ErrNotFound, err)
	case cms.IsForbidden(err):
		return fmt.Errorf("%s: %w: %w", op, store.ErrForbidden, err)
	case cms.IsInvalid(err):
		return fmt.Errorf("%s: %w: %w", op, store.ErrInvalidInput, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, store.ErrUnavailable, err)
	}
}
