package users

import (
	"errors"
	"net/http"
)

var (
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrInvalidUsername     = errors.New("username can only contain letters, numbers, '-' and '_'")
	ErrInvalidUsernameSize = errors.New("username must have at least 2 characters")
	ErrInvalidPassword     = errors.New("password must have at least 6 characters")
	ErrInvalidDateOfBirth  = errors.New("dateOfBirth must be a valid date (YYYY-MM-DD)")
	ErrMissingFields       = errors.New("all fields are required")
	ErrBookNotInList       = errors.New("book not found in your list")
)

var ErrorMap = map[error]int{
	ErrUserAlreadyExists:   http.StatusConflict,
	ErrUserNotFound:        http.StatusNotFound,
	ErrInvalidEmail:        http.StatusBadRequest,
	ErrInvalidUsername:     http.StatusBadRequest,
	ErrInvalidUsernameSize: http.StatusBadRequest,
	ErrInvalidPassword:     http.StatusBadRequest,
	ErrInvalidDateOfBirth:  http.StatusBadRequest,
	ErrMissingFields:       http.StatusBadRequest,
	ErrBookNotInList:       http.StatusNotFound,
}
