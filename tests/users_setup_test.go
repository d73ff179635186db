package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/elijahkato/booklab-backend/internal/auth"
	"github.com/elijahkato/booklab-backend/internal/mongodb"
	"github.com/elijahkato/booklab-backend/internal/services/users"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func registerUser(t *testing.T, user users.RegisterRequest) (users.UserResponse, string) {
	t.Helper()

	postBody, err := json.Marshal(user)
	require.NoError(t, err)

	resp, err := http.Post(
		testServer.URL+"/users/register",
		"application/json",
		bytes.NewBuffer(postBody),
	)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var respBody users.RegisterResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&respBody))

	token := getUserToken(t, auth.LoginRequest{
		Email:    user.Email,
		Password: user.Password,
	})

	return respBody.User, token
}

func getUserToken(t *testing.T, authUser auth.LoginRequest) string {
	t.Helper()

	postBody, err := json.Marshal(authUser)
	require.NoError(t, err)

	resp, err := http.Post(
		testServer.URL+"/users/login",
		"application/json",
		bytes.NewBuffer(postBody),
	)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var respBodyAuth auth.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&respBodyAuth))

	return respBodyAuth.Token
}

func getUserFromDb(t *testing.T, userId string) mongodb.UserDb {
	t.Helper()

	ctx := context.Background()
	coll := testClient.Database(TEST_DB_NAME).Collection(mongodb.UsersCollection)

	var userDb mongodb.UserDb
	err := coll.FindOne(ctx, bson.M{"_id": userId}).Decode(&userDb)
	require.NoError(t, err, "error querying a user from db")
	return userDb
}

func defaultRegisterRequest() users.RegisterRequest {
	return users.RegisterRequest{
		FirstName:   "Alice",
		LastName:    "Tester",
		DateOfBirth: "1990-04-15",
		Username:    "alice",
		Email:       "alice@email.com",
		Password:    "testpass",
	}
}
