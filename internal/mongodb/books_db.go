package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ----- Types for the database -----

// BookDb is the shared, community-level book record. It is keyed by the
// Google volume id and holds a snapshot of catalog fields (possibly stale)
// plus everyone's ratings and comments. Ratings hold at most one entry per
// userId; comments are append-only.
type BookDb struct {
	GoogleVolumeId string         `json:"googleVolumeId" bson:"_id"`
	Title          string         `json:"title" bson:"title"`
	Author         string         `json:"author" bson:"author"`
	Publisher      string         `json:"publisher" bson:"publisher"`
	PublishedDate  string         `json:"publishedDate" bson:"publishedDate"`
	Thumbnail      string         `json:"thumbnail" bson:"thumbnail"`
	Genre          string         `json:"genre" bson:"genre"`
	Description    string         `json:"description" bson:"description"`
	Ratings        []RatingEntry  `json:"ratings" bson:"ratings"`
	Comments       []CommentEntry `json:"comments" bson:"comments"`
	AverageRating  float64        `json:"averageRating" bson:"averageRating"`
	CreatedAt      time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type RatingEntry struct {
	UserId   string `json:"userId" bson:"userId"`
	Username string `json:"username" bson:"username"`
	Score    int    `json:"score" bson:"score"`
}

type CommentEntry struct {
	UserId    string    `json:"userId" bson:"userId"`
	Username  string    `json:"username" bson:"username"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// ----- Methods for the database -----

func (db *DB) GetBookByVolumeId(ctx context.Context, volumeId string) (BookDb, error) {
	coll := db.Collection(BooksCollection)
	var bookDb BookDb
	if err := coll.FindOne(ctx, bson.M{"_id": volumeId}).Decode(&bookDb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return BookDb{}, ErrRecordNotFound
		}
		return BookDb{}, err
	}
	return bookDb, nil
}

// UpsertBook writes the full book document, creating it when absent. The
// document update is atomic at the store level; concurrent writers race
// with last-write-wins semantics.
func (db *DB) UpsertBook(ctx context.Context, book BookDb) error {
	coll := db.Collection(BooksCollection)

	book.UpdatedAt = time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = book.UpdatedAt
	}

	opts := options.Replace().SetUpsert(true)
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": book.GoogleVolumeId}, book, opts)
	return err
}

func searchFilter(textQuery string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(textQuery), Options: "i"}
	return bson.M{"$or": []bson.M{
		{"title": pattern},
		{"author": pattern},
		{"genre": pattern},
	}}
}

// SearchBooks does a case-insensitive substring match across title, author
// and genre, returning one page of results.
func (db *DB) SearchBooks(ctx context.Context, textQuery string, skip, limit int) ([]BookDb, error) {
	coll := db.Collection(BooksCollection)

	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "title", Value: 1}})

	cursor, err := coll.Find(ctx, searchFilter(textQuery), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var books []BookDb
	if err := cursor.All(ctx, &books); err != nil {
		return []BookDb{}, err
	}

	return books, nil
}

func (db *DB) CountBooks(ctx context.Context, textQuery string) (int, error) {
	coll := db.Collection(BooksCollection)

	total, err := coll.CountDocuments(ctx, searchFilter(textQuery))
	if err != nil {
		return 0, err
	}

	return int(total), nil
}

func (db *DB) GetAllBookIds(ctx context.Context) ([]string, error) {
	coll := db.Collection(BooksCollection)

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Id string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.Id
	}
	return ids, nil
}
