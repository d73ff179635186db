package api

import (
	"encoding/json"
	"net/http"

	"github.com/elijahkato/booklab-backend/internal/auth"
	"github.com/elijahkato/booklab-backend/internal/generics"
	"github.com/elijahkato/booklab-backend/internal/logx"
	"github.com/elijahkato/booklab-backend/internal/services/books"
	"github.com/elijahkato/booklab-backend/internal/services/users"
)

// GET /books/search?q=&startIndex=&maxResults=
func (api *API) SearchHandler(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	query := r.URL.Query().Get("q")
	startIndex := generics.StringToIntOr(r.URL.Query().Get("startIndex"), 0)
	maxResults := generics.StringToIntOr(r.URL.Query().Get("maxResults"), 0)

	result, err := books.SearchCatalog(api.Db, api.Catalog, r.Context(), query, startIndex, maxResults, api.Cfg.SearchFromCache)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(books.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error while searching books")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GET /books/{volumeId}. Authentication is optional here: a valid bearer
// token only switches on the isAdded computation, an invalid one is
// treated the same as none.
func (api *API) GetBookViewHandler(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	volumeId := r.PathValue("volumeId")
	if volumeId == "" {
		respondWithError(w, http.StatusBadRequest, "Volume id is required")
		return
	}

	requesterUserId := ""
	if token, err := auth.GetBearerToken(r.Header); err == nil {
		if userId, err := auth.ValidateJWT(token, api.Cfg.TokenSecret); err == nil {
			requesterUserId = userId
		} else {
			logger.Printf("Ignoring invalid token on public book view: %v", err)
		}
	}

	view, err := books.GetBookView(api.Db, api.Catalog, r.Context(), volumeId, requesterUserId)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(books.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error while fetching book details")
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

// POST /books/add (auth required)
func (api *API) AddBookHandler(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	userId := auth.UserIdFromContext(r.Context())
	userDb, err := api.Db.GetUserById(r.Context(), userId)
	if err != nil {
		respondWithError(w, http.StatusNotFound, formatErrorMessage(books.ErrUserNotFound))
		return
	}

	var req books.ContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	myBook, err := books.SaveContribution(api.Db, api.Catalog, r.Context(), userDb, req)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(books.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error while saving book")
		return
	}

	respondWithJSON(w, http.StatusCreated, books.ContributionResponse{
		Message: "Book saved successfully",
		Book:    myBook,
	})
}

// GET /books/me (auth required)
func (api *API) GetMyBooksHandler(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	userId := auth.UserIdFromContext(r.Context())
	myBooks, err := users.GetMyBooks(api.Db, r.Context(), userId)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(users.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error while fetching your books")
		return
	}

	respondWithJSON(w, http.StatusOK, myBooks)
}

// DELETE /books/{volumeId} (auth required)
func (api *API) RemoveMyBookHandler(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	volumeId := r.PathValue("volumeId")
	if volumeId == "" {
		respondWithError(w, http.StatusBadRequest, "Volume id is required")
		return
	}

	userId := auth.UserIdFromContext(r.Context())
	if err := users.RemoveMyBook(api.Db, r.Context(), userId, volumeId); err != nil {
		if statusCode, ok := getErrorStatusCode(users.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error while removing book")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Book removed successfully"})
}

// GET /books?q=&page=&size=: browse the community book cache.
func (api *API) GetBooksHandler(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	textQuery := r.URL.Query().Get("q")
	page := generics.StringToIntOr(r.URL.Query().Get("page"), 1)
	size := generics.StringToIntOr(r.URL.Query().Get("size"), 0)

	bookPage, err := books.GetPageOfBooks(api.Db, r.Context(), textQuery, size, page)
	if err != nil {
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error while listing books")
		return
	}

	respondWithJSON(w, http.StatusOK, bookPage)
}

func (api *API) RootHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Book Recommendation API is running",
	})
}
