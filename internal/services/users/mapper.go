package users

import "github.com/elijahkato/booklab-backend/internal/mongodb"

func MapDbUserToResponse(userDb mongodb.UserDb) UserResponse {
	return UserResponse{
		Id:          userDb.Id,
		FirstName:   userDb.FirstName,
		LastName:    userDb.LastName,
		DateOfBirth: userDb.DateOfBirth,
		Username:    userDb.Username,
		Email:       userDb.Email,
		CreatedAt:   userDb.CreatedAt,
		UpdatedAt:   userDb.UpdatedAt,
	}
}
