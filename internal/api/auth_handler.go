package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/elijahkato/booklab-backend/internal/auth"
	"github.com/elijahkato/booklab-backend/internal/logx"
	"github.com/elijahkato/booklab-backend/internal/services/users"
)

const defaultExpiresAt = time.Hour

func (api *API) LoginHandler(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	var authReq auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&authReq); err != nil {
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if strings.TrimSpace(authReq.Email) == "" {
		respondWithError(w, http.StatusBadRequest, "Field email cannot be null")
		return
	}
	if strings.TrimSpace(authReq.Password) == "" {
		respondWithError(w, http.StatusBadRequest, "Field password cannot be null")
		return
	}

	loginResponse, err := users.Login(api.Db, r.Context(), authReq.Email, authReq.Password, api.Cfg.TokenSecret, defaultExpiresAt)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(auth.ErrorsMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error occurred")
		return
	}

	respondWithJSON(w, http.StatusOK, loginResponse)
}
