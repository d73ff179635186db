package books

import (
	"errors"
	"net/http"

	"github.com/elijahkato/booklab-backend/internal/googlebooks"
)

var (
	ErrBookNotFound       = errors.New("book not found")
	ErrInvalidRating      = errors.New("rating must be an integer between 1 and 5")
	ErrMissingVolumeId    = errors.New("googleVolumeId is required")
	ErrMissingTitleAuthor = errors.New("title and author are required")
	ErrUserNotFound       = errors.New("user not found")
)

var ErrorMap = map[error]int{
	ErrBookNotFound:                    http.StatusNotFound,
	ErrInvalidRating:                   http.StatusBadRequest,
	ErrMissingVolumeId:                 http.StatusBadRequest,
	ErrMissingTitleAuthor:              http.StatusBadRequest,
	ErrUserNotFound:                    http.StatusNotFound,
	googlebooks.ErrEmptyQuery:          http.StatusBadRequest,
	googlebooks.ErrVolumeNotFound:      http.StatusNotFound,
	googlebooks.ErrUpstreamUnavailable: http.StatusServiceUnavailable,
}
