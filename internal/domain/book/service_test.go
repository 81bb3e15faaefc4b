package book

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	books  map[uint]*Book
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{books: map[uint]*Book{}, nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, b *Book) error {
	b.ID = r.nextID
	r.nextID++
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uint) (*Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) FindActiveByID(ctx context.Context, id uint) (*Book, error) {
	b, err := r.FindByID(ctx, id)
	if err != nil || !b.IsActive {
		return nil, ErrBookNotFound
	}
	return b, nil
}

func (r *fakeRepo) FindByIDs(_ context.Context, ids []uint) (map[uint]*Book, error) {
	out := map[uint]*Book{}
	for _, id := range ids {
		if b, ok := r.books[id]; ok {
			cp := *b
			out[id] = &cp
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, b *Book) error {
	if _, ok := r.books[b.ID]; !ok {
		return ErrBookNotFound
	}
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter ListFilter) ([]*Book, int64, error) {
	var out []*Book
	for _, b := range r.books {
		if !b.IsActive {
			continue
		}
		if filter.Title != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(filter.Title)) {
			continue
		}
		if filter.Author != "" && !strings.EqualFold(b.Author, filter.Author) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func TestCreateBook(t *testing.T) {
	svc := NewService(newFakeRepo())

	b, err := svc.Create(context.Background(), 1, "The Go Programming Language", "Donovan", "the gopher book")
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.True(t, b.IsActive)
	assert.Equal(t, uint(1), b.CreatedBy)

	_, err = svc.Create(context.Background(), 1, "", "someone", "")
	assert.ErrorIs(t, err, ErrInvalidTitle)

	_, err = svc.Create(context.Background(), 1, "untitled", "", "")
	assert.ErrorIs(t, err, ErrInvalidAuthor)
}

func TestUpdateOwnerGate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, 1, "T1", "author-a", "d")
	require.NoError(t, err)

	// Non-owner update fails with Forbidden and leaves the book unchanged.
	_, err = svc.Update(ctx, 2, b.ID, "hijacked", "", "")
	assert.ErrorIs(t, err, ErrNotOwner)

	got, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "T1", got.Title)

	// Owner update applies partially: empty fields keep their values.
	updated, err := svc.Update(ctx, 1, b.ID, "T2", "", "")
	require.NoError(t, err)
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, "author-a", updated.Author)
	assert.True(t, updated.UpdatedAt.After(b.UpdatedAt) || updated.UpdatedAt.Equal(b.UpdatedAt))
}

func TestSoftDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, 1, "to delete", "a", "")
	require.NoError(t, err)

	// Non-owner delete is Forbidden.
	err = svc.SoftDelete(ctx, 99, b.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.SoftDelete(ctx, 1, b.ID))

	// Gone from the active read path and from listings.
	_, err = svc.Get(ctx, b.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)

	books, total, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, books)

	// Still reachable for aggregate views.
	any, err := svc.GetAny(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, any.IsActive)

	// No reactivation path: update of an inactive book is NotFound.
	_, err = svc.Update(ctx, 1, b.ID, "back", "", "")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestListDefaultsPagination(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, _, err := svc.List(ctx, ListFilter{Page: -1, PageSize: 1000})
	require.NoError(t, err)
}
