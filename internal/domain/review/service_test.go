package review

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// fakeRepo keeps reviews in memory and computes the aggregates the way the
// SQL layer does, so ordering and tie-break behavior match.
type fakeRepo struct {
	reviews []*Review
	nextID  uint
}

func (r *fakeRepo) Create(_ context.Context, rv *Review) error {
	r.nextID++
	rv.ID = r.nextID
	cp := *rv
	r.reviews = append(r.reviews, &cp)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uint) (*Review, error) {
	for _, rv := range r.reviews {
		if rv.ID == id {
			cp := *rv
			return &cp, nil
		}
	}
	return nil, ErrReviewNotFound
}

func (r *fakeRepo) ListByBook(_ context.Context, bookID uint) ([]*Review, error) {
	var out []*Review
	for _, rv := range r.reviews {
		if rv.BookID == bookID {
			cp := *rv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) List(_ context.Context) ([]*Review, error) {
	out := make([]*Review, 0, len(r.reviews))
	for _, rv := range r.reviews {
		cp := *rv
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepo) AverageRating(_ context.Context, bookID uint) (*float64, error) {
	var sum, n int
	for _, rv := range r.reviews {
		if rv.BookID == bookID {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := float64(sum) / float64(n)
	return &avg, nil
}

func (r *fakeRepo) TopRated(_ context.Context, n int) ([]RatedBook, error) {
	sums := map[uint]int{}
	counts := map[uint]int64{}
	for _, rv := range r.reviews {
		sums[rv.BookID] += rv.Rating
		counts[rv.BookID]++
	}

	var out []RatedBook
	for id, sum := range sums {
		out = append(out, RatedBook{
			BookID:      id,
			AvgRating:   float64(sum) / float64(counts[id]),
			ReviewCount: counts[id],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgRating != out[j].AvgRating {
			return out[i].AvgRating > out[j].AvgRating
		}
		return out[i].BookID < out[j].BookID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// fakeBookRepo only needs FindByID for review creation.
type fakeBookRepo struct {
	existing map[uint]bool
}

func (r *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	if !r.existing[id] {
		return nil, book.ErrBookNotFound
	}
	return &book.Book{ID: id, IsActive: true}, nil
}

func (r *fakeBookRepo) FindActiveByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookRepo) FindByIDs(_ context.Context, ids []uint) (map[uint]*book.Book, error) {
	out := map[uint]*book.Book{}
	for _, id := range ids {
		if r.existing[id] {
			out[id] = &book.Book{ID: id, IsActive: true}
		}
	}
	return out, nil
}

func (r *fakeBookRepo) Create(context.Context, *book.Book) error { return nil }
func (r *fakeBookRepo) Update(context.Context, *book.Book) error { return nil }
func (r *fakeBookRepo) List(context.Context, book.ListFilter) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func newService(bookIDs ...uint) (Service, *fakeRepo) {
	books := &fakeBookRepo{existing: map[uint]bool{}}
	for _, id := range bookIDs {
		books.existing[id] = true
	}
	repo := &fakeRepo{}
	return NewService(repo, books), repo
}

func TestAddReviewValidatesRating(t *testing.T) {
	svc, _ := newService(1)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1, 100} {
		_, err := svc.AddReview(ctx, 1, 1, rating, "bad")
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d must be rejected", rating)
	}

	for _, rating := range []int{1, 5} {
		_, err := svc.AddReview(ctx, 1, 1, rating, "edge")
		assert.NoError(t, err, "rating %d is valid", rating)
	}
}

func TestAddReviewRequiresExistingBook(t *testing.T) {
	svc, _ := newService(1)

	_, err := svc.AddReview(context.Background(), 1, 999, 4, "ghost")
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestMultipleReviewsPerUserAllowed(t *testing.T) {
	svc, repo := newService(1)
	ctx := context.Background()

	_, err := svc.AddReview(ctx, 7, 1, 3, "first impression")
	require.NoError(t, err)
	_, err = svc.AddReview(ctx, 7, 1, 5, "grew on me")
	require.NoError(t, err)

	assert.Len(t, repo.reviews, 2)
}

func TestAverageRating(t *testing.T) {
	svc, _ := newService(1, 2)
	ctx := context.Background()

	for _, rating := range []int{3, 4, 5} {
		_, err := svc.AddReview(ctx, uint(rating), 1, rating, "")
		require.NoError(t, err)
	}

	avg, err := svc.AverageRating(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.InDelta(t, 4.0, *avg, 1e-9)

	// Zero reviews: nil, not an error.
	avg, err = svc.AverageRating(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, avg)
}

func TestTopRatedOrderingAndTieBreak(t *testing.T) {
	svc, _ := newService(1, 2, 3, 4)
	ctx := context.Background()

	// book 3: avg 5.0; books 1 and 2: avg 4.0 (tie); book 4: no reviews.
	mustAdd := func(bookID uint, ratings ...int) {
		for _, r := range ratings {
			_, err := svc.AddReview(ctx, 1, bookID, r, "")
			require.NoError(t, err)
		}
	}
	mustAdd(2, 4)
	mustAdd(3, 5, 5)
	mustAdd(1, 3, 5)

	top, err := svc.TopRated(ctx, 0) // default N
	require.NoError(t, err)
	require.Len(t, top, 3)

	assert.Equal(t, uint(3), top[0].BookID)
	// Tie at 4.0 breaks by ascending book id.
	assert.Equal(t, uint(1), top[1].BookID)
	assert.Equal(t, uint(2), top[2].BookID)

	// Unreviewed book 4 is excluded.
	for _, rb := range top {
		assert.NotEqual(t, uint(4), rb.BookID)
	}
}

func TestTopRatedEmpty(t *testing.T) {
	svc, _ := newService()

	top, err := svc.TopRated(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestTopRatedLimits(t *testing.T) {
	svc, _ := newService(1, 2, 3)
	ctx := context.Background()
	for id := uint(1); id <= 3; id++ {
		_, err := svc.AddReview(ctx, 1, id, int(id)+2, "")
		require.NoError(t, err)
	}

	top, err := svc.TopRated(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}
