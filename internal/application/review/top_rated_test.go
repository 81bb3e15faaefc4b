package review

import (
	"context"
	"encoding/json"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/event"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	payload, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(payload, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = payload
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *fakeCache) DeletePattern(_ context.Context, pattern string) error {
	for k := range c.entries {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.entries, k)
		}
	}
	return nil
}

// fakeReviewService serves a canned ranking and counts aggregate queries.
type fakeReviewService struct {
	rated    []review.RatedBook
	topCalls int
}

func (s *fakeReviewService) AddReview(context.Context, uint, uint, int, string) (*review.Review, error) {
	return nil, nil
}

func (s *fakeReviewService) GetReview(context.Context, uint) (*review.Review, error) {
	return nil, nil
}

func (s *fakeReviewService) ListReviews(context.Context, uint) ([]*review.Review, error) {
	return nil, nil
}

func (s *fakeReviewService) AverageRating(context.Context, uint) (*float64, error) {
	return nil, nil
}

func (s *fakeReviewService) TopRated(_ context.Context, n int) ([]review.RatedBook, error) {
	s.topCalls++
	if n > 0 && len(s.rated) > n {
		return s.rated[:n], nil
	}
	return s.rated, nil
}

type fakeBookRepo struct {
	books map[uint]*book.Book
}

func (r *fakeBookRepo) Create(context.Context, *book.Book) error { return nil }
func (r *fakeBookRepo) Update(context.Context, *book.Book) error { return nil }

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

func (r *fakeBookRepo) List(context.Context, book.ListFilter) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func TestTopRatedCacheAside(t *testing.T) {
	svc := &fakeReviewService{rated: []review.RatedBook{
		{BookID: 3, AvgRating: 5.0, ReviewCount: 2},
		{BookID: 1, AvgRating: 4.0, ReviewCount: 1},
	}}
	repo := &fakeBookRepo{books: map[uint]*book.Book{
		1: {ID: 1, Title: "One", Author: "A", IsActive: true},
		3: {ID: 3, Title: "Three", Author: "B", IsActive: false}, // deactivated, still ranked
	}}
	c := newFakeCache()

	uc := NewTopRatedUseCase(svc, repo, c, metrics.NewRegistry(), 2*time.Hour)
	ctx := context.Background()

	got, err := uc.Execute(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint(3), got[0].BookID)
	assert.Equal(t, "Three", got[0].Title)
	assert.Equal(t, uint(1), got[1].BookID)
	assert.Equal(t, 1, svc.topCalls)
	assert.Contains(t, c.entries, topRatedKey)

	// Second call is a hit.
	got2, err := uc.Execute(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, got, got2)
	assert.Equal(t, 1, svc.topCalls)
}

func TestTopRatedEmptyResultCached(t *testing.T) {
	svc := &fakeReviewService{}
	c := newFakeCache()
	uc := NewTopRatedUseCase(svc, &fakeBookRepo{books: map[uint]*book.Book{}}, c, metrics.NewRegistry(), time.Hour)

	got, err := uc.Execute(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	// An empty ranking is a valid value and caches like any other.
	assert.Contains(t, c.entries, topRatedKey)
}

func TestTopRatedExplicitLimitBypassesCache(t *testing.T) {
	svc := &fakeReviewService{rated: []review.RatedBook{
		{BookID: 1, AvgRating: 5.0, ReviewCount: 1},
		{BookID: 2, AvgRating: 4.0, ReviewCount: 1},
	}}
	c := newFakeCache()
	uc := NewTopRatedUseCase(svc, &fakeBookRepo{books: map[uint]*book.Book{}}, c, metrics.NewRegistry(), time.Hour)
	ctx := context.Background()

	got, err := uc.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NotContains(t, c.entries, topRatedKey)

	_, err = uc.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, svc.topCalls)
}

func TestCreateReviewInvalidatesRanking(t *testing.T) {
	c := newFakeCache()
	require.NoError(t, c.Set(context.Background(), topRatedKey, "stale", time.Hour))
	require.NoError(t, c.Set(context.Background(), detailKey(1), "stale", time.Hour))

	svc := &creatingReviewService{}
	uc := NewCreateReviewUseCase(svc, &stubBookService{}, c, event.NopNotifier{})

	_, err := uc.Execute(context.Background(), CreateReviewRequest{BookID: 1, UserID: 2, Rating: 5})
	require.NoError(t, err)

	assert.NotContains(t, c.entries, topRatedKey)
	assert.NotContains(t, c.entries, detailKey(1))
}

type creatingReviewService struct {
	fakeReviewService
}

func (s *creatingReviewService) AddReview(_ context.Context, userID, bookID uint, rating int, text string) (*review.Review, error) {
	return &review.Review{ID: 7, BookID: bookID, UserID: userID, Rating: rating, ReviewText: text}, nil
}

type stubBookService struct{}

func (stubBookService) Create(context.Context, uint, string, string, string) (*book.Book, error) {
	return nil, nil
}

func (stubBookService) Update(context.Context, uint, uint, string, string, string) (*book.Book, error) {
	return nil, nil
}

func (stubBookService) SoftDelete(context.Context, uint, uint) error { return nil }

func (stubBookService) Get(context.Context, uint) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}

func (stubBookService) GetAny(_ context.Context, id uint) (*book.Book, error) {
	return &book.Book{ID: id, CreatedBy: 9, IsActive: true}, nil
}

func (stubBookService) List(context.Context, book.ListFilter) ([]*book.Book, int64, error) {
	return nil, 0, nil
}
