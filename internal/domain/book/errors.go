package book

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

var (
	// ErrBookNotFound covers both missing and soft-deleted books on the
	// public read paths.
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "book not found")

	// ErrNotOwner rejects a mutation attempted by a non-owner.
	ErrNotOwner = apperrors.New(apperrors.ErrCodeForbidden, "only the book's creator may modify it")

	// ErrInvalidTitle / ErrInvalidAuthor guard required fields.
	ErrInvalidTitle  = apperrors.New(apperrors.ErrCodeInvalidParams, "title is required and must be at most 200 characters")
	ErrInvalidAuthor = apperrors.New(apperrors.ErrCodeInvalidParams, "author is required and must be at most 200 characters")
)
