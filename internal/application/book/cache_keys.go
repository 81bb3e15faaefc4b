package book

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// Cache key layout. Detail and list entries are invalidated on every book
// mutation; the list keyspace is cleared with a pattern delete because the
// filter hash makes individual keys unenumerable.
const (
	detailKeyFormat = "book:detail:%d"
	listKeyPrefix   = "book:list:"
	listKeyPattern  = "book:list:*"
)

func detailKey(bookID uint) string {
	return fmt.Sprintf(detailKeyFormat, bookID)
}

// listKey hashes the canonical filter representation so that equal queries
// share an entry regardless of parameter order at the HTTP layer.
func listKey(filter book.ListFilter) string {
	canonical := fmt.Sprintf("t=%s|a=%s|u=%s|p=%d|s=%d", filter.Title, filter.Author, filter.Username, filter.Page, filter.PageSize)
	if filter.CreatedAfter != nil {
		canonical += "|ca=" + filter.CreatedAfter.UTC().Format("2006-01-02T15:04:05")
	}
	if filter.CreatedBefore != nil {
		canonical += "|cb=" + filter.CreatedBefore.UTC().Format("2006-01-02T15:04:05")
	}

	sum := sha1.Sum([]byte(canonical))
	return listKeyPrefix + hex.EncodeToString(sum[:])
}
