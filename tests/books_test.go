package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/elijahkato/booklab-backend/internal/api"
	"github.com/elijahkato/booklab-backend/internal/generics"
	"github.com/elijahkato/booklab-backend/internal/mongodb"
	"github.com/elijahkato/booklab-backend/internal/services/books"
	"github.com/elijahkato/booklab-backend/internal/services/users"
	"github.com/stretchr/testify/require"
)

func TestAddBook(t *testing.T) {
	t.Run("Adding a book with a rating and comment", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		_, token := registerUser(t, defaultRegisterRequest())

		respBody := addBook(t, token, books.ContributionRequest{
			GoogleVolumeId: "XYZ1",
			Rating:         ratingOf(5),
			Comment:        "Loved it",
		})
		require.Equal(t, "Book saved successfully", respBody.Message)
		require.Equal(t, "XYZ1", respBody.Book.GoogleVolumeId)
		require.Equal(t, "Dune", respBody.Book.Title, "metadata should come from the catalog")
		require.Equal(t, "Frank Herbert", respBody.Book.Author)
		require.Len(t, respBody.Book.Ratings, 1)
		require.Equal(t, 5, respBody.Book.Ratings[0].Score)
		require.Len(t, respBody.Book.Comments, 1)
		require.Equal(t, "Loved it", respBody.Book.Comments[0].Text)

		// The shared record mirrors the contribution.
		bookDb := getBookFromDb(t, "XYZ1")
		require.Equal(t, "Dune", bookDb.Title)
		require.Len(t, bookDb.Ratings, 1)
		require.Equal(t, "alice", bookDb.Ratings[0].Username)
		require.Len(t, bookDb.Comments, 1)
		require.Equal(t, 5.0, bookDb.AverageRating)

		myBooks := getMyBooks(t, token)
		require.Len(t, myBooks, 1)
		require.Equal(t, "XYZ1", myBooks[0].GoogleVolumeId)
	})

	t.Run("Re-rating replaces the previous score", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		_, token := registerUser(t, defaultRegisterRequest())

		addBook(t, token, books.ContributionRequest{GoogleVolumeId: "XYZ1", Rating: ratingOf(5)})
		addBook(t, token, books.ContributionRequest{GoogleVolumeId: "XYZ1", Rating: ratingOf(3)})

		bookDb := getBookFromDb(t, "XYZ1")
		require.Len(t, bookDb.Ratings, 1, "a second rating must replace, not duplicate")
		require.Equal(t, 3, bookDb.Ratings[0].Score)
		require.Equal(t, 3.0, bookDb.AverageRating)

		myBooks := getMyBooks(t, token)
		require.Len(t, myBooks, 1)
		require.Len(t, myBooks[0].Ratings, 1)
		require.Equal(t, 3, myBooks[0].Ratings[0].Score)
	})

	t.Run("Comments append instead of replacing", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		_, token := registerUser(t, defaultRegisterRequest())

		addBook(t, token, books.ContributionRequest{GoogleVolumeId: "XYZ1", Comment: "First read"})
		addBook(t, token, books.ContributionRequest{GoogleVolumeId: "XYZ1", Comment: "Second read"})

		bookDb := getBookFromDb(t, "XYZ1")
		require.Len(t, bookDb.Comments, 2)
		require.Equal(t, "First read", bookDb.Comments[0].Text)
		require.Equal(t, "Second read", bookDb.Comments[1].Text)

		myBooks := getMyBooks(t, token)
		require.Len(t, myBooks, 1)
		require.Len(t, myBooks[0].Comments, 2)
	})

	t.Run("Ratings from two users average out", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		_, aliceToken := registerUser(t, defaultRegisterRequest())

		bobRequest := defaultRegisterRequest()
		bobRequest.Username = "bob"
		bobRequest.Email = "bob@email.com"
		_, bobToken := registerUser(t, bobRequest)

		addBook(t, aliceToken, books.ContributionRequest{GoogleVolumeId: "XYZ1", Rating: ratingOf(5)})
		addBook(t, bobToken, books.ContributionRequest{GoogleVolumeId: "XYZ1", Rating: ratingOf(4)})

		bookDb := getBookFromDb(t, "XYZ1")
		require.Len(t, bookDb.Ratings, 2)
		require.Equal(t, 4.5, bookDb.AverageRating)

		require.Len(t, getMyBooks(t, aliceToken), 1)
		require.Len(t, getMyBooks(t, bobToken), 1)
	})

	t.Run("Caller-supplied metadata wins over the catalog", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		_, token := registerUser(t, defaultRegisterRequest())

		respBody := addBook(t, token, books.ContributionRequest{
			GoogleVolumeId: "XYZ1",
			Title:          "Dune (Annotated)",
			Author:         "Frank Herbert",
			Rating:         ratingOf(4),
		})
		require.Equal(t, "Dune (Annotated)", respBody.Book.Title)
	})

	t.Run("A comment never overwrites the stored description", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		_, token := registerUser(t, defaultRegisterRequest())

		addBook(t, token, books.ContributionRequest{
			GoogleVolumeId: "XYZ1",
			Title:          "Dune",
			Author:         "Frank Herbert",
			Description:    "The one true description",
			Genre:          "Science Fiction",
		})

		// A later call carrying a comment must not replace the description
		// as a side effect, even when it ships one.
		respBody := addBook(t, token, books.ContributionRequest{
			GoogleVolumeId: "XYZ1",
			Title:          "Dune",
			Author:         "Frank Herbert",
			Description:    "A drive-by description",
			Genre:          "Classic Science Fiction",
			Comment:        "Still holds up",
		})
		require.Equal(t, "The one true description", respBody.Book.Description)
		require.Equal(t, "Classic Science Fiction", respBody.Book.Genre, "genre updates on every call")
		require.Len(t, respBody.Book.Comments, 1)

		// Without a comment the description does update.
		respBody = addBook(t, token, books.ContributionRequest{
			GoogleVolumeId: "XYZ1",
			Title:          "Dune",
			Author:         "Frank Herbert",
			Description:    "A better description",
		})
		require.Equal(t, "A better description", respBody.Book.Description)
	})

	t.Run("Catalog outage substitutes the cached record for a contribution", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		_, token := registerUser(t, defaultRegisterRequest())

		// Populate the cache, then take the catalog down.
		getBookView(t, "", "XYZ1")
		testCatalog.setDown(true)

		respBody := addBook(t, token, books.ContributionRequest{
			GoogleVolumeId: "XYZ1",
			Rating:         ratingOf(5),
		})
		require.Equal(t, "Dune", respBody.Book.Title, "metadata must come from the cached record")
		require.Equal(t, "Frank Herbert", respBody.Book.Author)

		bookDb := getBookFromDb(t, "XYZ1")
		require.Len(t, bookDb.Ratings, 1)
		require.Equal(t, 5.0, bookDb.AverageRating)
	})

	t.Run("Catalog outage with no cache fails a contribution", func(t *testing.T) {
		resetDB(t)
		testCatalog.setDown(true)

		_, token := registerUser(t, defaultRegisterRequest())

		resp := doRequest(t, http.MethodPost, "/books/add", token, books.ContributionRequest{
			GoogleVolumeId: "XYZ1",
			Rating:         ratingOf(5),
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("Out-of-range rating is rejected and nothing persists", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		_, token := registerUser(t, defaultRegisterRequest())

		for _, score := range []int{0, 6, -1} {
			resp := doRequest(t, http.MethodPost, "/books/add", token, books.ContributionRequest{
				GoogleVolumeId: "XYZ1",
				Rating:         ratingOf(score),
			})
			defer resp.Body.Close()
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var errorResponse api.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&errorResponse))
			require.Contains(t, errorResponse.ErrorMessage, books.ErrInvalidRating.Error()[1:])
		}

		require.False(t, checkBookExists(t, "XYZ1"), "a rejected contribution must not create the record")
		require.Empty(t, getMyBooks(t, token))
	})

	t.Run("Missing volume id is rejected", func(t *testing.T) {
		resetDB(t)

		_, token := registerUser(t, defaultRegisterRequest())

		resp := doRequest(t, http.MethodPost, "/books/add", token, books.ContributionRequest{Rating: ratingOf(5)})
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown volume with no metadata anywhere is rejected", func(t *testing.T) {
		resetDB(t)

		_, token := registerUser(t, defaultRegisterRequest())

		resp := doRequest(t, http.MethodPost, "/books/add", token, books.ContributionRequest{
			GoogleVolumeId: "NOPE1",
			Rating:         ratingOf(5),
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var errorResponse api.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errorResponse))
		require.Contains(t, errorResponse.ErrorMessage, books.ErrMissingTitleAuthor.Error()[1:])
	})

	t.Run("Adding without a token returns 401", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		resp := doRequest(t, http.MethodPost, "/books/add", "", books.ContributionRequest{GoogleVolumeId: "XYZ1"})
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetBookView(t *testing.T) {
	t.Run("Fetching an uncached volume caches it", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		view := getBookView(t, "", "XYZ1")
		require.Equal(t, "Dune", view.Title)
		require.Equal(t, "Frank Herbert", view.Author)
		require.False(t, view.IsAdded)
		require.Empty(t, view.Ratings)
		require.Empty(t, view.Comments)

		require.True(t, checkBookExists(t, "XYZ1"), "a successful fetch must persist the record")
	})

	t.Run("isAdded reflects the requester", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		_, aliceToken := registerUser(t, defaultRegisterRequest())

		bobRequest := defaultRegisterRequest()
		bobRequest.Username = "bob"
		bobRequest.Email = "bob@email.com"
		_, bobToken := registerUser(t, bobRequest)

		addBook(t, aliceToken, books.ContributionRequest{GoogleVolumeId: "XYZ1", Rating: ratingOf(5)})

		require.True(t, getBookView(t, aliceToken, "XYZ1").IsAdded)
		require.False(t, getBookView(t, bobToken, "XYZ1").IsAdded)
		require.False(t, getBookView(t, "", "XYZ1").IsAdded)
	})

	t.Run("Catalog refresh preserves community fields", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		_, token := registerUser(t, defaultRegisterRequest())
		addBook(t, token, books.ContributionRequest{GoogleVolumeId: "XYZ1", Rating: ratingOf(5), Comment: "Loved it"})

		// The catalog record changes upstream.
		testCatalog.setVolume("XYZ1", stubVolume{
			Title:   "Dune: Deluxe Edition",
			Authors: []string{"Frank Herbert"},
		})

		view := getBookView(t, "", "XYZ1")
		require.Equal(t, "Dune: Deluxe Edition", view.Title)
		require.Len(t, view.Ratings, 1, "ratings must survive a catalog refresh")
		require.Len(t, view.Comments, 1, "comments must survive a catalog refresh")
		require.Equal(t, 5.0, view.AverageRating)
	})

	t.Run("Catalog outage serves the stale cached record", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		// Populate the cache, then take the catalog down.
		getBookView(t, "", "XYZ1")
		testCatalog.setDown(true)

		view := getBookView(t, "", "XYZ1")
		require.Equal(t, "Dune", view.Title)
	})

	t.Run("Unknown volume with no cache returns 404", func(t *testing.T) {
		resetDB(t)

		resp := doRequest(t, http.MethodGet, "/books/NOPE1", "", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		var errorResponse api.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errorResponse))
		require.Contains(t, errorResponse.ErrorMessage, books.ErrBookNotFound.Error()[1:])
	})

	t.Run("Catalog outage with no cache returns 404", func(t *testing.T) {
		resetDB(t)
		testCatalog.setDown(true)

		resp := doRequest(t, http.MethodGet, "/books/XYZ1", "", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRemoveMyBook(t *testing.T) {
	t.Run("Removing a saved book keeps the shared record", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		_, token := registerUser(t, defaultRegisterRequest())
		addBook(t, token, books.ContributionRequest{GoogleVolumeId: "XYZ1", Rating: ratingOf(5)})

		resp := doRequest(t, http.MethodDelete, "/books/XYZ1", token, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		require.Empty(t, getMyBooks(t, token))

		// The community record keeps the past contribution.
		bookDb := getBookFromDb(t, "XYZ1")
		require.Len(t, bookDb.Ratings, 1)
		require.Equal(t, 5.0, bookDb.AverageRating)
	})

	t.Run("Removing a book not in the list returns 404", func(t *testing.T) {
		resetDB(t)

		_, token := registerUser(t, defaultRegisterRequest())

		resp := doRequest(t, http.MethodDelete, "/books/XYZ1", token, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		var errorResponse api.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errorResponse))
		require.Contains(t, errorResponse.ErrorMessage, users.ErrBookNotInList.Error()[1:])
	})

	t.Run("Removing without a token returns 401", func(t *testing.T) {
		resetDB(t)

		resp := doRequest(t, http.MethodDelete, "/books/XYZ1", "", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestSearchBooks(t *testing.T) {
	t.Run("Searching returns normalized catalog results", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		resp := doRequest(t, http.MethodGet, "/books/search?q=dune", "", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result books.SearchResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		require.Equal(t, 1, result.TotalItems)
		require.Len(t, result.Items, 1)
		require.Equal(t, "XYZ1", result.Items[0].GoogleVolumeId)
		require.Equal(t, "Dune", result.Items[0].Title)
		require.Equal(t, "Frank Herbert", result.Items[0].Author)
		require.Equal(t, "Science Fiction", result.Items[0].Genre)
	})

	t.Run("Searching without a query returns 400", func(t *testing.T) {
		resetDB(t)

		resp := doRequest(t, http.MethodGet, "/books/search", "", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSearchFromCache(t *testing.T) {
	t.Run("A full cached page is served without the catalog", func(t *testing.T) {
		resetDB(t)
		seedBooks(t, []interface{}{
			mongodb.BookDb{GoogleVolumeId: "GO1", Title: "Go in Action", Author: "William Kennedy"},
			mongodb.BookDb{GoogleVolumeId: "GO2", Title: "The Go Programming Language", Author: "Alan Donovan"},
		})

		// The catalog being down proves the page came from the cache.
		testCatalog.setDown(true)

		resp, err := http.Get(testCacheServer.URL + "/books/search?q=go&maxResults=2")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result books.SearchResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		require.Equal(t, 2, result.TotalItems)
		require.Len(t, result.Items, 2)
	})

	t.Run("A partial cache page still goes upstream", func(t *testing.T) {
		resetDB(t)
		seedBooks(t, []interface{}{
			mongodb.BookDb{GoogleVolumeId: "GO1", Title: "Go in Action", Author: "William Kennedy"},
		})

		// One cached match cannot fill a page of two, so the request must
		// hit the catalog, and the outage surfaces.
		testCatalog.setDown(true)

		resp, err := http.Get(testCacheServer.URL + "/books/search?q=go&maxResults=2")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("The default server ignores the cache", func(t *testing.T) {
		resetDB(t)
		seedBooks(t, []interface{}{
			mongodb.BookDb{GoogleVolumeId: "GO1", Title: "Go in Action", Author: "William Kennedy"},
			mongodb.BookDb{GoogleVolumeId: "GO2", Title: "The Go Programming Language", Author: "Alan Donovan"},
		})
		testCatalog.setDown(true)

		resp, err := http.Get(testServer.URL + "/books/search?q=go&maxResults=2")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestBrowseBooks(t *testing.T) {
	t.Run("Browsing pages through the community cache", func(t *testing.T) {
		resetDB(t)
		seedDuneVolume()

		_, token := registerUser(t, defaultRegisterRequest())
		addBook(t, token, books.ContributionRequest{GoogleVolumeId: "XYZ1", Rating: ratingOf(5)})

		resp := doRequest(t, http.MethodGet, "/books?q=dune", "", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page generics.Page[books.BookSummary]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
		require.Equal(t, 1, page.Page)
		require.Equal(t, 1, page.TotalResults)
		require.Len(t, page.Content, 1)
		require.Equal(t, "Dune", page.Content[0].Title)
		require.Equal(t, 5.0, page.Content[0].AverageRating)
		require.Equal(t, 1, page.Content[0].RatingsCount)
	})
}
