package favorite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

type pair struct {
	userID, bookID uint
}

// fakeRepo mirrors the database behavior: uniqueness is enforced on insert
// (like the composite unique index), not by a pre-check in the service.
type fakeRepo struct {
	pairs  map[pair]uint
	books  map[uint]*book.Book
	nextID uint
}

func (r *fakeRepo) Create(_ context.Context, fav *Favorite) error {
	p := pair{fav.UserID, fav.BookID}
	if _, ok := r.pairs[p]; ok {
		return ErrAlreadyFavorited
	}
	r.nextID++
	fav.ID = r.nextID
	r.pairs[p] = fav.ID
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, userID, bookID uint) error {
	p := pair{userID, bookID}
	if _, ok := r.pairs[p]; !ok {
		return ErrFavoriteNotFound
	}
	delete(r.pairs, p)
	return nil
}

func (r *fakeRepo) ListBooksByUser(_ context.Context, userID uint) ([]*book.Book, error) {
	var out []*book.Book
	for p := range r.pairs {
		if p.userID == userID {
			if b, ok := r.books[p.bookID]; ok {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

type fakeBookRepo struct {
	books map[uint]*book.Book
}

func (r *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) FindActiveByID(ctx context.Context, id uint) (*book.Book, error) {
	b, err := r.FindByID(ctx, id)
	if err != nil || !b.IsActive {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) FindByIDs(_ context.Context, ids []uint) (map[uint]*book.Book, error) {
	out := map[uint]*book.Book{}
	for _, id := range ids {
		if b, ok := r.books[id]; ok {
			out[id] = b
		}
	}
	return out, nil
}

func (r *fakeBookRepo) Create(context.Context, *book.Book) error { return nil }
func (r *fakeBookRepo) Update(context.Context, *book.Book) error { return nil }
func (r *fakeBookRepo) List(context.Context, book.ListFilter) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func newService(books map[uint]*book.Book) (Service, *fakeRepo) {
	repo := &fakeRepo{pairs: map[pair]uint{}, books: books}
	return NewService(repo, &fakeBookRepo{books: books}), repo
}

func TestAddDuplicateIsConflict(t *testing.T) {
	books := map[uint]*book.Book{1: {ID: 1, IsActive: true}}
	svc, repo := newService(books)
	ctx := context.Background()

	_, err := svc.Add(ctx, 10, 1)
	require.NoError(t, err)

	// Second add: exactly one stored pair, distinct Conflict error.
	_, err = svc.Add(ctx, 10, 1)
	assert.ErrorIs(t, err, ErrAlreadyFavorited)
	assert.Len(t, repo.pairs, 1)
}

func TestAddUnknownBook(t *testing.T) {
	svc, _ := newService(map[uint]*book.Book{})

	_, err := svc.Add(context.Background(), 10, 404)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestUserMayFavoriteOwnBook(t *testing.T) {
	books := map[uint]*book.Book{1: {ID: 1, CreatedBy: 10, IsActive: true}}
	svc, _ := newService(books)

	_, err := svc.Add(context.Background(), 10, 1)
	assert.NoError(t, err)
}

func TestRemoveTwice(t *testing.T) {
	books := map[uint]*book.Book{1: {ID: 1, IsActive: true}}
	svc, _ := newService(books)
	ctx := context.Background()

	_, err := svc.Add(ctx, 10, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, 10, 1))

	// Second remove is a clean NotFound, not a panic or server error.
	err = svc.Remove(ctx, 10, 1)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestListIncludesInactiveBooks(t *testing.T) {
	books := map[uint]*book.Book{
		1: {ID: 1, Title: "still here", IsActive: true},
		2: {ID: 2, Title: "soft deleted", IsActive: false},
	}
	svc, repo := newService(books)
	ctx := context.Background()

	_, err := svc.Add(ctx, 10, 1)
	require.NoError(t, err)
	// Pair for the now-inactive book was created before deactivation.
	repo.pairs[pair{10, 2}] = 99

	got, err := svc.ListByUser(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
