package books

import (
	"context"
	"errors"
	"fmt"

	"github.com/elijahkato/booklab-backend/internal/googlebooks"
	"github.com/elijahkato/booklab-backend/internal/mongodb"
)

/*
GetBookView reconciles the three sources of truth for a single volume:
the upstream catalog, the shared cached book record, and (when the
requester is known) their personal list.

  - A successful catalog fetch refreshes the cached snapshot fields and is
    persisted back, leaving ratings/comments/averageRating untouched.
  - A failed catalog fetch degrades to the stale cached record when one
    exists, and fails with ErrBookNotFound when there is no data anywhere.
  - requesterUserId may be empty; isAdded is only computed when it is not.
*/
func GetBookView(db *mongodb.DB, catalog *googlebooks.Client, ctx context.Context, volumeId, requesterUserId string) (BookView, error) {
	book, cacheErr := db.GetBookByVolumeId(ctx, volumeId)
	cached := cacheErr == nil
	if cacheErr != nil && !errors.Is(cacheErr, mongodb.ErrRecordNotFound) {
		return BookView{}, cacheErr
	}

	vol, catalogErr := catalog.FetchVolume(ctx, volumeId)
	if catalogErr == nil {
		if !cached {
			book = mongodb.BookDb{
				GoogleVolumeId: volumeId,
				Ratings:        []mongodb.RatingEntry{},
				Comments:       []mongodb.CommentEntry{},
			}
		}
		book = mergeVolume(book, vol)
		if err := db.UpsertBook(ctx, book); err != nil {
			return BookView{}, err
		}
	} else if !cached {
		// No data anywhere
		return BookView{}, fmt.Errorf("%w: %s", ErrBookNotFound, volumeId)
	}
	// Catalog down but the cache holds a record: serve the stale copy.

	view := mapBookDbToView(book)

	if requesterUserId != "" {
		user, err := db.GetUserById(ctx, requesterUserId)
		if err == nil {
			view.IsAdded = findMyBook(user.MyBooks, volumeId) >= 0
		} else if !errors.Is(err, mongodb.ErrRecordNotFound) {
			return BookView{}, err
		}
	}

	return view, nil
}

/*
SaveContribution is the add/rate/comment upsert. It resolves authoritative
volume fields (caller-supplied values win, blanks are filled from the
catalog), mirrors the rating/comment into the shared book record with
per-user rating dedup and an average recompute, and upserts the caller's
myBooks entry.

Returns the updated myBooks entry.
*/
func SaveContribution(db *mongodb.DB, catalog *googlebooks.Client, ctx context.Context, user mongodb.UserDb, req ContributionRequest) (mongodb.MyBookDb, error) {
	if req.GoogleVolumeId == "" {
		return mongodb.MyBookDb{}, ErrMissingVolumeId
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return mongodb.MyBookDb{}, ErrInvalidRating
	}

	resolved, err := resolveVolume(db, catalog, ctx, req)
	if err != nil {
		return mongodb.MyBookDb{}, err
	}

	// Mirror the contribution into the shared book record.
	if req.Rating != nil || req.Comment != "" {
		book, err := db.GetBookByVolumeId(ctx, req.GoogleVolumeId)
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			book = bookFromVolume(resolved)
		} else if err != nil {
			return mongodb.MyBookDb{}, err
		}

		if req.Rating != nil {
			book.Ratings = upsertRating(book.Ratings, mongodb.RatingEntry{
				UserId:   user.Id,
				Username: user.Username,
				Score:    *req.Rating,
			})
		}
		if req.Comment != "" {
			book.Comments = append(book.Comments, newCommentEntry(user.Id, user.Username, req.Comment))
		}
		book.AverageRating = meanScore(book.Ratings)

		if err := db.UpsertBook(ctx, book); err != nil {
			return mongodb.MyBookDb{}, err
		}
	}

	// Upsert the caller's personal entry.
	idx := findMyBook(user.MyBooks, req.GoogleVolumeId)
	if idx < 0 {
		entry := myBookFromVolume(resolved)
		if req.Rating != nil {
			entry.Ratings = upsertRating(entry.Ratings, mongodb.RatingEntry{
				UserId:   user.Id,
				Username: user.Username,
				Score:    *req.Rating,
			})
		}
		if req.Comment != "" {
			entry.Comments = append(entry.Comments, newCommentEntry(user.Id, user.Username, req.Comment))
		}
		user.MyBooks = append(user.MyBooks, entry)
		idx = len(user.MyBooks) - 1
	} else {
		entry := &user.MyBooks[idx]
		if req.Comment != "" {
			entry.Comments = append(entry.Comments, newCommentEntry(user.Id, user.Username, req.Comment))
		}
		if req.Rating != nil {
			entry.Ratings = upsertRating(entry.Ratings, mongodb.RatingEntry{
				UserId:   user.Id,
				Username: user.Username,
				Score:    *req.Rating,
			})
		}
		if resolved.Genre != "" && resolved.Genre != entry.Genre {
			entry.Genre = resolved.Genre
		}
		// A comment-bearing call leaves the stored description alone so
		// the last real description is not replaced as a side effect.
		if resolved.Description != "" && req.Comment == "" {
			entry.Description = resolved.Description
		}
	}

	if err := db.UpdateMyBooks(ctx, user.Id, user.MyBooks); err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return mongodb.MyBookDb{}, ErrUserNotFound
		}
		return mongodb.MyBookDb{}, err
	}

	return user.MyBooks[idx], nil
}

// resolveVolume builds the authoritative volume fields for a contribution.
// Caller-supplied non-empty values always win; when title or author is
// missing the catalog fills the gaps, and when the catalog is down an
// existing cached record substitutes. Title and author must be resolved
// one way or another.
func resolveVolume(db *mongodb.DB, catalog *googlebooks.Client, ctx context.Context, req ContributionRequest) (googlebooks.Volume, error) {
	vol := googlebooks.Volume{
		GoogleVolumeId: req.GoogleVolumeId,
		Title:          req.Title,
		Author:         req.Author,
		Publisher:      req.Publisher,
		PublishedDate:  req.PublishedDate,
		Thumbnail:      req.Thumbnail,
		Genre:          req.Genre,
		Description:    req.Description,
	}

	if vol.Title != "" && vol.Author != "" {
		return vol, nil
	}

	fetched, err := catalog.FetchVolume(ctx, req.GoogleVolumeId)
	if err == nil {
		return fillBlanks(vol, fetched), nil
	}

	// Catalog failed: an already-cached record can substitute.
	book, cacheErr := db.GetBookByVolumeId(ctx, req.GoogleVolumeId)
	if cacheErr == nil {
		vol = fillBlanks(vol, mapBookDbToVolume(book))
		if vol.Title != "" && vol.Author != "" {
			return vol, nil
		}
	}

	if errors.Is(err, googlebooks.ErrVolumeNotFound) {
		return googlebooks.Volume{}, ErrMissingTitleAuthor
	}
	return googlebooks.Volume{}, err
}

func bookFromVolume(vol googlebooks.Volume) mongodb.BookDb {
	return mongodb.BookDb{
		GoogleVolumeId: vol.GoogleVolumeId,
		Title:          vol.Title,
		Author:         vol.Author,
		Publisher:      vol.Publisher,
		PublishedDate:  vol.PublishedDate,
		Thumbnail:      vol.Thumbnail,
		Genre:          vol.Genre,
		Description:    vol.Description,
		Ratings:        []mongodb.RatingEntry{},
		Comments:       []mongodb.CommentEntry{},
	}
}

func myBookFromVolume(vol googlebooks.Volume) mongodb.MyBookDb {
	return mongodb.MyBookDb{
		GoogleVolumeId: vol.GoogleVolumeId,
		Title:          vol.Title,
		Author:         vol.Author,
		Publisher:      vol.Publisher,
		PublishedDate:  vol.PublishedDate,
		Thumbnail:      vol.Thumbnail,
		Description:    vol.Description,
		Genre:          vol.Genre,
		Ratings:        []mongodb.RatingEntry{},
		Comments:       []mongodb.CommentEntry{},
	}
}
