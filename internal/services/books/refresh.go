package books

import (
	"context"
	"reflect"

	"github.com/elijahkato/booklab-backend/internal/googlebooks"
	"github.com/elijahkato/booklab-backend/internal/mongodb"
)

// RefreshCachedBook re-fetches one cached book from the catalog and
// persists the merged snapshot. Community fields survive untouched, same
// rules as GetBookView. Reports whether any snapshot field changed.
func RefreshCachedBook(db *mongodb.DB, catalog *googlebooks.Client, ctx context.Context, volumeId string) (bool, error) {
	book, err := db.GetBookByVolumeId(ctx, volumeId)
	if err != nil {
		return false, err
	}

	vol, err := catalog.FetchVolume(ctx, volumeId)
	if err != nil {
		return false, err
	}

	merged := mergeVolume(book, vol)
	if reflect.DeepEqual(merged, book) {
		return false, nil
	}

	if err := db.UpsertBook(ctx, merged); err != nil {
		return false, err
	}
	return true, nil
}
