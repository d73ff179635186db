package books

import (
	"github.com/elijahkato/booklab-backend/internal/googlebooks"
	"github.com/elijahkato/booklab-backend/internal/mongodb"
)

// BookView is the merged, community-level view of a single volume:
// catalog fields reconciled with the cached record, plus everyone's
// ratings and comments and the requester's isAdded flag.
type BookView struct {
	GoogleVolumeId string                  `json:"googleVolumeId"`
	Title          string                  `json:"title"`
	Author         string                  `json:"author"`
	Publisher      string                  `json:"publisher"`
	PublishedDate  string                  `json:"publishedDate"`
	Thumbnail      string                  `json:"thumbnail"`
	Genre          string                  `json:"genre"`
	Description    string                  `json:"description"`
	Ratings        []mongodb.RatingEntry   `json:"ratings"`
	Comments       []mongodb.CommentEntry  `json:"comments"`
	AverageRating  float64                 `json:"averageRating"`
	IsAdded        bool                    `json:"isAdded"`
}

// ContributionRequest is the POST /books/add payload: the volume being
// saved plus the caller's optional rating and comment.
type ContributionRequest struct {
	GoogleVolumeId string `json:"googleVolumeId"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	Publisher      string `json:"publisher"`
	PublishedDate  string `json:"publishedDate"`
	Thumbnail      string `json:"thumbnail"`
	Description    string `json:"description"`
	Genre          string `json:"genre"`
	Rating         *int   `json:"rating,omitempty"`
	Comment        string `json:"comment,omitempty"`
}

type ContributionResponse struct {
	Message string           `json:"message"`
	Book    mongodb.MyBookDb `json:"book"`
}

type SearchResult struct {
	Items      []googlebooks.Volume `json:"items"`
	TotalItems int                  `json:"totalItems"`
}

// BookSummary is the lightweight shape used when browsing the community
// book listing.
type BookSummary struct {
	GoogleVolumeId string  `json:"googleVolumeId"`
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	Genre          string  `json:"genre"`
	Thumbnail      string  `json:"thumbnail"`
	AverageRating  float64 `json:"averageRating"`
	RatingsCount   int     `json:"ratingsCount"`
	CommentsCount  int     `json:"commentsCount"`
}

func mapBookDbToSummary(book mongodb.BookDb) BookSummary {
	return BookSummary{
		GoogleVolumeId: book.GoogleVolumeId,
		Title:          book.Title,
		Author:         book.Author,
		Genre:          book.Genre,
		Thumbnail:      book.Thumbnail,
		AverageRating:  book.AverageRating,
		RatingsCount:   len(book.Ratings),
		CommentsCount:  len(book.Comments),
	}
}

func mapBookDbToView(book mongodb.BookDb) BookView {
	ratings := book.Ratings
	if ratings == nil {
		ratings = []mongodb.RatingEntry{}
	}
	comments := book.Comments
	if comments == nil {
		comments = []mongodb.CommentEntry{}
	}

	return BookView{
		GoogleVolumeId: book.GoogleVolumeId,
		Title:          book.Title,
		Author:         book.Author,
		Publisher:      book.Publisher,
		PublishedDate:  book.PublishedDate,
		Thumbnail:      book.Thumbnail,
		Genre:          book.Genre,
		Description:    book.Description,
		Ratings:        ratings,
		Comments:       comments,
		AverageRating:  book.AverageRating,
	}
}

// mapBookDbToVolume rebuilds the normalized volume shape from a cached
// record, used when a search page is served from the cache instead of the
// upstream catalog.
func mapBookDbToVolume(book mongodb.BookDb) googlebooks.Volume {
	return googlebooks.Volume{
		GoogleVolumeId: book.GoogleVolumeId,
		Title:          book.Title,
		Author:         book.Author,
		Publisher:      book.Publisher,
		PublishedDate:  book.PublishedDate,
		Thumbnail:      book.Thumbnail,
		Genre:          book.Genre,
		Description:    book.Description,
		CatalogRating:  book.AverageRating,
	}
}
