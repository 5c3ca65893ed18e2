package musicapi

import (
	"context"
	"fmt"
	"sync"
)

// Result holds either a value or the error that prevented it.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the result carries a value.
func (r Result[T]) OK() bool { return r.Err == nil }

// FetchAlbumDetails requests every album concurrently. The returned slice has
// one entry per input album, in input order; a failed album never cancels
// its siblings.
func FetchAlbumDetails(ctx context.Context, catalog Catalog, albums []AlbumSummary) []Result[AlbumDetail] {
	results := make([]Result[AlbumDetail], len(albums))

	var wg sync.WaitGroup
	for i, album := range albums {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			detail, err := catalog.GetAlbumDetail(ctx, id)
			if err != nil {
				results[i] = Result[AlbumDetail]{Err: fmt.Errorf("album %s: %w", id, err)}
				return
			}
			results[i] = Result[AlbumDetail]{Value: *detail}
		}(i, album.ID)
	}
	wg.Wait()

	return results
}
