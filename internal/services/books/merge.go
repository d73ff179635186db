package books

import (
	"time"

	"github.com/elijahkato/booklab-backend/internal/googlebooks"
	"github.com/elijahkato/booklab-backend/internal/mongodb"
)

// mergeVolume overwrites the snapshot fields of a cached book with the
// catalog values, field by field and only where the catalog provides a
// non-empty value. Community fields (ratings, comments, averageRating)
// are never touched here.
func mergeVolume(book mongodb.BookDb, vol googlebooks.Volume) mongodb.BookDb {
	if vol.GoogleVolumeId != "" {
		book.GoogleVolumeId = vol.GoogleVolumeId
	}
	if vol.Title != "" {
		book.Title = vol.Title
	}
	if vol.Author != "" {
		book.Author = vol.Author
	}
	if vol.Publisher != "" {
		book.Publisher = vol.Publisher
	}
	if vol.PublishedDate != "" {
		book.PublishedDate = vol.PublishedDate
	}
	if vol.Thumbnail != "" {
		book.Thumbnail = vol.Thumbnail
	}
	if vol.Genre != "" {
		book.Genre = vol.Genre
	}
	if vol.Description != "" {
		book.Description = vol.Description
	}
	return book
}

// upsertRating replaces the score of an existing entry for the same user,
// or appends a new one. Latest write wins per user; no history is kept.
func upsertRating(ratings []mongodb.RatingEntry, entry mongodb.RatingEntry) []mongodb.RatingEntry {
	for i := range ratings {
		if ratings[i].UserId == entry.UserId {
			ratings[i].Score = entry.Score
			ratings[i].Username = entry.Username
			return ratings
		}
	}
	return append(ratings, entry)
}

// meanScore computes the average of all rating scores, 0 when there are
// none.
func meanScore(ratings []mongodb.RatingEntry) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Score
	}
	return float64(sum) / float64(len(ratings))
}

func newCommentEntry(userId, username, text string) mongodb.CommentEntry {
	return mongodb.CommentEntry{
		UserId:    userId,
		Username:  username,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// fillBlanks copies fields from fallback into vol wherever vol left them
// empty. Caller-supplied values are never overwritten.
func fillBlanks(vol, fallback googlebooks.Volume) googlebooks.Volume {
	if vol.Title == "" {
		vol.Title = fallback.Title
	}
	if vol.Author == "" {
		vol.Author = fallback.Author
	}
	if vol.Publisher == "" {
		vol.Publisher = fallback.Publisher
	}
	if vol.PublishedDate == "" {
		vol.PublishedDate = fallback.PublishedDate
	}
	if vol.Thumbnail == "" {
		vol.Thumbnail = fallback.Thumbnail
	}
	if vol.Genre == "" {
		vol.Genre = fallback.Genre
	}
	if vol.Description == "" {
		vol.Description = fallback.Description
	}
	return vol
}

func findMyBook(myBooks []mongodb.MyBookDb, volumeId string) int {
	for i := range myBooks {
		if myBooks[i].GoogleVolumeId == volumeId {
			return i
		}
	}
	return -1
}
