package users

import (
	"context"
	"errors"
	"time"

	"github.com/elijahkato/booklab-backend/internal/auth"
	"github.com/elijahkato/booklab-backend/internal/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const minUsernameSize = 2
const minPasswordSize = 6

// Register validates the payload, checks username/email uniqueness, hashes
// the password and inserts the account with an empty myBooks list.
func Register(db *mongodb.DB, ctx context.Context, req RegisterRequest) (UserResponse, error) {
	if req.FirstName == "" || req.LastName == "" || req.DateOfBirth == "" ||
		req.Username == "" || req.Email == "" || req.Password == "" {
		return UserResponse{}, ErrMissingFields
	}
	if !IsValidEmail(req.Email) {
		return UserResponse{}, ErrInvalidEmail
	}
	if len(req.Username) < minUsernameSize {
		return UserResponse{}, ErrInvalidUsernameSize
	}
	if !IsValidUsername(req.Username) {
		return UserResponse{}, ErrInvalidUsername
	}
	if len(req.Password) < minPasswordSize {
		return UserResponse{}, ErrInvalidPassword
	}

	dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return UserResponse{}, ErrInvalidDateOfBirth
	}

	_, err = db.GetUserByUsernameOrEmail(ctx, req.Username, req.Email)
	if err == nil {
		return UserResponse{}, ErrUserAlreadyExists
	}
	if !errors.Is(err, mongodb.ErrRecordNotFound) {
		return UserResponse{}, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return UserResponse{}, err
	}

	now := time.Now()
	userDb := mongodb.UserDb{
		Id:           primitive.NewObjectID().Hex(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DateOfBirth:  dateOfBirth,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		MyBooks:      []mongodb.MyBookDb{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := db.InsertUser(ctx, userDb); err != nil {
		// The unique indexes are the backstop for concurrent registrations.
		if mongo.IsDuplicateKeyError(err) {
			return UserResponse{}, ErrUserAlreadyExists
		}
		return UserResponse{}, err
	}

	return MapDbUserToResponse(userDb), nil
}

// Login checks the credentials and issues a signed token on success.
func Login(db *mongodb.DB, ctx context.Context, email, password, tokenSecret string, expiresIn time.Duration) (auth.LoginResponse, error) {
	userDb, err := db.GetUserByUsernameOrEmail(ctx, "", email)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := auth.CheckPasswordHash(userDb.PasswordHash, password); err != nil {
		return auth.LoginResponse{}, err
	}

	token, err := auth.MakeJWT(userDb.Id, tokenSecret, expiresIn)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		Token:    token,
		Username: userDb.Username,
		Email:    userDb.Email,
	}, nil
}

// GetMyBooks returns the caller's personal list, never nil.
func GetMyBooks(db *mongodb.DB, ctx context.Context, userId string) ([]mongodb.MyBookDb, error) {
	userDb, err := db.GetUserById(ctx, userId)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if userDb.MyBooks == nil {
		return []mongodb.MyBookDb{}, nil
	}
	return userDb.MyBooks, nil
}

// RemoveMyBook drops the matching myBooks entry. The shared book record
// keeps the user's past ratings/comments; only the personal copy goes.
func RemoveMyBook(db *mongodb.DB, ctx context.Context, userId, volumeId string) error {
	userDb, err := db.GetUserById(ctx, userId)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	idx := -1
	for i := range userDb.MyBooks {
		if userDb.MyBooks[i].GoogleVolumeId == volumeId {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrBookNotInList
	}

	myBooks := append(userDb.MyBooks[:idx], userDb.MyBooks[idx+1:]...)
	return db.UpdateMyBooks(ctx, userId, myBooks)
}
