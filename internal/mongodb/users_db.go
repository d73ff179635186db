package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserDb holds an account plus the embedded myBooks list. Each myBooks
// entry is that user's personal copy of the volume fields with only their
// own rating/comment entries; at most one entry exists per volume id.
type UserDb struct {
	Id           string     `json:"id" bson:"_id"`
	FirstName    string     `json:"firstName" bson:"firstName"`
	LastName     string     `json:"lastName" bson:"lastName"`
	DateOfBirth  time.Time  `json:"dateOfBirth" bson:"dateOfBirth"`
	Username     string     `json:"username" bson:"username"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"passwordHash"`
	MyBooks      []MyBookDb `json:"myBooks" bson:"myBooks"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt"`
}

type MyBookDb struct {
	GoogleVolumeId string         `json:"googleVolumeId" bson:"googleVolumeId"`
	Title          string         `json:"title" bson:"title"`
	Author         string         `json:"author" bson:"author"`
	Publisher      string         `json:"publisher" bson:"publisher"`
	PublishedDate  string         `json:"publishedDate" bson:"publishedDate"`
	Thumbnail      string         `json:"thumbnail" bson:"thumbnail"`
	Description    string         `json:"description" bson:"description"`
	Genre          string         `json:"genre" bson:"genre"`
	Ratings        []RatingEntry  `json:"ratings" bson:"ratings"`
	Comments       []CommentEntry `json:"comments" bson:"comments"`
}

func (db *DB) GetUserById(ctx context.Context, id string) (UserDb, error) {
	coll := db.Collection(UsersCollection)
	var userDb UserDb
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&userDb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return UserDb{}, ErrRecordNotFound
		}
		return UserDb{}, err
	}

	return userDb, nil
}

// GetUserByUsernameOrEmail matches either credential; empty values are
// left out of the filter.
func (db *DB) GetUserByUsernameOrEmail(ctx context.Context, username, email string) (UserDb, error) {
	coll := db.Collection(UsersCollection)

	var or []bson.M
	if username != "" {
		or = append(or, bson.M{"username": username})
	}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if len(or) == 0 {
		return UserDb{}, ErrRecordNotFound
	}

	var userDb UserDb
	if err := coll.FindOne(ctx, bson.M{"$or": or}).Decode(&userDb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return UserDb{}, ErrRecordNotFound
		}
		return UserDb{}, err
	}

	return userDb, nil
}

func (db *DB) InsertUser(ctx context.Context, user UserDb) error {
	coll := db.Collection(UsersCollection)
	_, err := coll.InsertOne(ctx, user)
	return err
}

// UpdateMyBooks replaces the user's embedded myBooks list. The list is
// exclusively owned by that user, so a whole-field $set is safe.
func (db *DB) UpdateMyBooks(ctx context.Context, userId string, myBooks []MyBookDb) error {
	coll := db.Collection(UsersCollection)

	update := bson.M{"$set": bson.M{
		"myBooks":   myBooks,
		"updatedAt": time.Now(),
	}}

	result, err := coll.UpdateOne(ctx, bson.M{"_id": userId}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}
