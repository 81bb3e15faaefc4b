package review

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

var (
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "review not found")

	// ErrInvalidRating enforces the 1..5 bound.
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "rating must be between 1 and 5")
)
