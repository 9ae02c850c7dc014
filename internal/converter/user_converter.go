package converter

import (
	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:                user.ID,
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Role:              roleName(user.RoleID),
		ProfileImageURL:   user.ProfileImageURL,
		IsProfileComplete: user.IsProfileComplete,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
}

func roleName(roleID int) string {
	switch roleID {
	case entity.RoleIDAdmin:
		return entity.RoleAdmin
	case entity.RoleIDDoctor:
		return entity.RoleDoctor
	default:
		return entity.RoleUser
	}
}
