package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/elijahkato/booklab-backend/internal/mongodb"
	"github.com/elijahkato/booklab-backend/internal/services/books"
	"github.com/stretchr/testify/require"
)

// doRequest sends an authenticated JSON request to the test server. An
// empty token leaves the Authorization header off.
func doRequest(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(payload)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, testServer.URL+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func addBook(t *testing.T, token string, req books.ContributionRequest) books.ContributionResponse {
	t.Helper()

	resp := doRequest(t, http.MethodPost, "/books/add", token, req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var respBody books.ContributionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&respBody))
	return respBody
}

func getMyBooks(t *testing.T, token string) []mongodb.MyBookDb {
	t.Helper()

	resp := doRequest(t, http.MethodGet, "/books/me", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var myBooks []mongodb.MyBookDb
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&myBooks))
	return myBooks
}

func getBookView(t *testing.T, token, volumeId string) books.BookView {
	t.Helper()

	resp := doRequest(t, http.MethodGet, "/books/"+volumeId, token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view books.BookView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	return view
}

func ratingOf(rating int) *int {
	return &rating
}

func seedDuneVolume() {
	testCatalog.setVolume("XYZ1", stubVolume{
		Title:       "Dune",
		Authors:     []string{"Frank Herbert"},
		Publisher:   "Chilton Books",
		Description: "A desert planet worth fighting over",
		Categories:  []string{"Science Fiction"},
		Thumbnail:   "http://img/dune.jpg",
	})
}
