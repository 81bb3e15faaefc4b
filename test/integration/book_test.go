package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookLifecycle(t *testing.T) {
	base := apiURL(t)
	_, ownerToken := RegisterTestUser(t, "owner")
	_, otherToken := RegisterTestUser(t, "other")

	bookID := CreateTestBook(t, ownerToken, "Lifecycle Book")
	bookURL := fmt.Sprintf("%s/books/%d", base, bookID)

	t.Run("detail includes empty rating", func(t *testing.T) {
		resp := GetJSON(t, bookURL, "")
		require.Equal(t, 0, resp.Code, resp.Message)

		var detail struct {
			Book      BookData `json:"book"`
			AvgRating *float64 `json:"avg_rating"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &detail))
		assert.Equal(t, "Lifecycle Book", detail.Book.Title)
		assert.Nil(t, detail.AvgRating, "no reviews yet, avg must be null")
	})

	t.Run("non-owner cannot update", func(t *testing.T) {
		resp := PutJSON(t, bookURL, map[string]interface{}{"title": "hijacked"}, otherToken)
		assert.NotEqual(t, 0, resp.Code, "non-owner update must fail")

		// The book is unchanged.
		check := GetJSON(t, bookURL, "")
		var detail struct {
			Book BookData `json:"book"`
		}
		require.NoError(t, json.Unmarshal(check.Data, &detail))
		assert.Equal(t, "Lifecycle Book", detail.Book.Title)
	})

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		resp := PutJSON(t, bookURL, map[string]interface{}{"title": "Renamed"}, ownerToken)
		require.Equal(t, 0, resp.Code, resp.Message)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "Renamed", data.Title)
		assert.Equal(t, "Integration Author", data.Author)
	})

	t.Run("soft delete hides the book from reads", func(t *testing.T) {
		resp := DeleteJSON(t, bookURL, otherToken)
		assert.NotEqual(t, 0, resp.Code, "non-owner delete must fail")

		resp = DeleteJSON(t, bookURL, ownerToken)
		require.Equal(t, 0, resp.Code, resp.Message)

		resp = GetJSON(t, bookURL, "")
		assert.NotEqual(t, 0, resp.Code, "deleted book must 404")
	})
}

func TestBookListFilters(t *testing.T) {
	base := apiURL(t)
	_, token := RegisterTestUser(t, "lister")

	CreateTestBook(t, token, "Filter Target Alpha")
	CreateTestBook(t, token, "Filter Target Beta")

	resp := GetJSON(t, base+"/books?title=filter+target", "")
	require.Equal(t, 0, resp.Code, resp.Message)

	var page struct {
		List  []BookData `json:"list"`
		Total int64      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.GreaterOrEqual(t, page.Total, int64(2), "case-insensitive substring match")

	// An empty result set is still a 200.
	resp = GetJSON(t, base+"/books?title=no-such-title-anywhere", "")
	assert.Equal(t, 0, resp.Code, "empty listing is success, not 404")
}
