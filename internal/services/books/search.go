package books

import (
	"context"

	"github.com/elijahkato/booklab-backend/internal/generics"
	"github.com/elijahkato/booklab-backend/internal/googlebooks"
	"github.com/elijahkato/booklab-backend/internal/mongodb"
)

const (
	defaultPageSize = 20
	maxPageSize     = 40
)

/*
SearchCatalog runs a free-text search against the upstream catalog. When
serveFromCache is set and the local book cache already holds a full page
of matches, the page is served from the cache and the upstream call is
skipped entirely. That is a latency/cost shortcut, not a correctness
mechanism: a partially-filled cache page still goes upstream.
*/
func SearchCatalog(db *mongodb.DB, catalog *googlebooks.Client, ctx context.Context, query string, startIndex, maxResults int, serveFromCache bool) (SearchResult, error) {
	if query == "" {
		return SearchResult{}, googlebooks.ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = defaultPageSize
	}
	if maxResults > maxPageSize {
		maxResults = maxPageSize
	}

	if serveFromCache {
		cached, err := db.SearchBooks(ctx, query, startIndex, maxResults)
		if err == nil && len(cached) >= maxResults {
			total, err := db.CountBooks(ctx, query)
			if err == nil {
				items := make([]googlebooks.Volume, len(cached))
				for i, book := range cached {
					items[i] = mapBookDbToVolume(book)
				}
				return SearchResult{Items: items, TotalItems: total}, nil
			}
		}
		// Fall through to the upstream catalog on any cache miss or error.
	}

	items, total, err := catalog.Search(ctx, query, startIndex, maxResults)
	if err != nil {
		return SearchResult{}, err
	}
	if items == nil {
		items = []googlebooks.Volume{}
	}

	return SearchResult{Items: items, TotalItems: total}, nil
}

// GetPageOfBooks returns one page of the community book cache, optionally
// filtered by a case-insensitive substring across title/author/genre.
func GetPageOfBooks(db *mongodb.DB, ctx context.Context, textQuery string, size, page int) (generics.Page[BookSummary], error) {
	if size <= 0 {
		size = defaultPageSize
	}
	if size > 100 {
		size = 100
	}
	if page <= 0 {
		page = 1
	}

	totalBooks, err := db.CountBooks(ctx, textQuery)
	if err != nil {
		return generics.Page[BookSummary]{}, err
	}

	skip := (page - 1) * size
	booksDb, err := db.SearchBooks(ctx, textQuery, skip, size)
	if err != nil {
		return generics.Page[BookSummary]{}, err
	}

	summaries := make([]BookSummary, len(booksDb))
	for i, book := range booksDb {
		summaries[i] = mapBookDbToSummary(book)
	}

	totalPages := (totalBooks + size - 1) / size
	if totalBooks == 0 {
		totalPages = 1
	}

	return generics.Page[BookSummary]{
		Page:         page,
		Size:         len(summaries),
		TotalPages:   totalPages,
		TotalResults: totalBooks,
		Content:      summaries,
	}, nil
}
