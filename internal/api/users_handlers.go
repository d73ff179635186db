package api

import (
	"encoding/json"
	"net/http"

	"github.com/elijahkato/booklab-backend/internal/logx"
	"github.com/elijahkato/booklab-backend/internal/services/users"
)

func (api *API) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	var req users.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := users.Register(api.Db, r.Context(), req)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(users.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	respondWithJSON(w, http.StatusCreated, users.RegisterResponse{
		Message: "User registered successfully",
		User:    user,
	})
}
