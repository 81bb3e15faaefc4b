package book

import (
	"context"
	"encoding/json"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// fakeCache stores JSON payloads in memory and counts data store traffic
// indirectly via the fake services.
type fakeCache struct {
	entries map[string][]byte
	failing bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	if c.failing {
		return false, assert.AnError
	}
	payload, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(payload, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if c.failing {
		return assert.AnError
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = payload
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	if c.failing {
		return assert.AnError
	}
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *fakeCache) DeletePattern(_ context.Context, pattern string) error {
	if c.failing {
		return assert.AnError
	}
	for k := range c.entries {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.entries, k)
		}
	}
	return nil
}

// fakeBookService counts Get calls so tests can tell a cache hit from a
// fallthrough to the data store.
type fakeBookService struct {
	book     *book.Book
	getCalls int
}

func (s *fakeBookService) Create(context.Context, uint, string, string, string) (*book.Book, error) {
	return nil, nil
}

func (s *fakeBookService) Update(context.Context, uint, uint, string, string, string) (*book.Book, error) {
	return nil, nil
}

func (s *fakeBookService) SoftDelete(context.Context, uint, uint) error { return nil }

func (s *fakeBookService) Get(_ context.Context, id uint) (*book.Book, error) {
	s.getCalls++
	if s.book == nil || s.book.ID != id || !s.book.IsActive {
		return nil, book.ErrBookNotFound
	}
	return s.book, nil
}

func (s *fakeBookService) GetAny(_ context.Context, id uint) (*book.Book, error) {
	if s.book == nil || s.book.ID != id {
		return nil, book.ErrBookNotFound
	}
	return s.book, nil
}

func (s *fakeBookService) List(context.Context, book.ListFilter) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

type fakeReviewService struct {
	reviews []*review.Review
	avg     *float64
}

func (s *fakeReviewService) AddReview(context.Context, uint, uint, int, string) (*review.Review, error) {
	return nil, nil
}

func (s *fakeReviewService) GetReview(context.Context, uint) (*review.Review, error) {
	return nil, nil
}

func (s *fakeReviewService) ListReviews(context.Context, uint) ([]*review.Review, error) {
	return s.reviews, nil
}

func (s *fakeReviewService) AverageRating(context.Context, uint) (*float64, error) {
	return s.avg, nil
}

func (s *fakeReviewService) TopRated(context.Context, int) ([]review.RatedBook, error) {
	return nil, nil
}

func TestGetBookCacheAside(t *testing.T) {
	avg := 4.5
	books := &fakeBookService{book: &book.Book{ID: 1, Title: "T", Author: "A", IsActive: true}}
	reviews := &fakeReviewService{
		reviews: []*review.Review{{ID: 1, BookID: 1, UserID: 2, Rating: 5, ReviewText: "great"}},
		avg:     &avg,
	}
	c := newFakeCache()

	uc := NewGetBookUseCase(books, reviews, c, metrics.NewRegistry(), time.Hour)
	ctx := context.Background()

	// Miss: served from the store, then cached.
	resp, err := uc.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "T", resp.Book.Title)
	require.NotNil(t, resp.AvgRating)
	assert.InDelta(t, 4.5, *resp.AvgRating, 1e-9)
	assert.Len(t, resp.Reviews, 1)
	assert.Equal(t, 1, books.getCalls)
	assert.Contains(t, c.entries, detailKey(1))

	// Hit: the store is not consulted again.
	resp2, err := uc.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, resp.Book.Title, resp2.Book.Title)
	assert.Equal(t, 1, books.getCalls)
}

func TestGetBookCacheErrorFallsThrough(t *testing.T) {
	books := &fakeBookService{book: &book.Book{ID: 1, Title: "T", Author: "A", IsActive: true}}
	c := newFakeCache()
	c.failing = true

	uc := NewGetBookUseCase(books, &fakeReviewService{}, c, metrics.NewRegistry(), time.Hour)

	// A broken cache costs latency, never correctness.
	resp, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "T", resp.Book.Title)
	assert.Nil(t, resp.AvgRating)
	assert.Equal(t, 1, books.getCalls)
}

func TestGetBookInactiveNotFound(t *testing.T) {
	books := &fakeBookService{book: &book.Book{ID: 1, IsActive: false}}
	uc := NewGetBookUseCase(books, &fakeReviewService{}, newFakeCache(), metrics.NewRegistry(), time.Hour)

	_, err := uc.Execute(context.Background(), 1)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestUpdateInvalidatesDetailAndList(t *testing.T) {
	c := newFakeCache()
	require.NoError(t, c.Set(context.Background(), detailKey(1), "stale", time.Hour))
	require.NoError(t, c.Set(context.Background(), listKeyPrefix+"abc", "stale", time.Hour))
	require.NoError(t, c.Set(context.Background(), detailKey(2), "other", time.Hour))

	books := &updatingBookService{}
	uc := NewUpdateBookUseCase(books, c)

	_, err := uc.Execute(context.Background(), UpdateBookRequest{BookID: 1, RequesterID: 1, Title: "new"})
	require.NoError(t, err)

	assert.NotContains(t, c.entries, detailKey(1))
	assert.NotContains(t, c.entries, listKeyPrefix+"abc")
	// Unrelated detail entries survive.
	assert.Contains(t, c.entries, detailKey(2))
}

// updatingBookService returns a fixed book from Update.
type updatingBookService struct {
	fakeBookService
}

func (s *updatingBookService) Update(context.Context, uint, uint, string, string, string) (*book.Book, error) {
	return &book.Book{ID: 1, Title: "new", Author: "A", IsActive: true}, nil
}
