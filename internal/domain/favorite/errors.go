package favorite

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

var (
	// ErrAlreadyFavorited is the conflict raised on a duplicate pair,
	// distinct from generic validation failures.
	ErrAlreadyFavorited = apperrors.New(apperrors.ErrCodeConflict, "book already in favorites")

	// ErrFavoriteNotFound is returned when removing a pair that does not
	// exist; the API maps it to a client error, not a server error.
	ErrFavoriteNotFound = apperrors.New(apperrors.ErrCodeFavoriteNotFound, "book is not in favorites")
)
