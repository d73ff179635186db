package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	UsersCollection = "users"
	BooksCollection = "books"
)

var ErrRecordNotFound = errors.New("record not found in the database")

// DB wraps the mongo database handle so repositories and handlers receive
// an explicit dependency instead of reaching for a package-level client.
type DB struct {
	database *mongo.Database
}

func NewDB(client *mongo.Client, name string) *DB {
	return &DB{database: client.Database(name)}
}

func (db *DB) Collection(name string) *mongo.Collection {
	return db.database.Collection(name)
}

func (db *DB) Database() *mongo.Database {
	return db.database
}
