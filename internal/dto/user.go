package dto

import "github.com/statementdesk/bank_recon_app/internal/core/domain"

// UserResponse is the API representation of a caseworker.
type UserResponse struct {
	UserID     string `json:"userID"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Department string `json:"department,omitempty"`
}

// ListUsersResponse wraps the user list payload.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse maps a domain user to its API representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Department: u.Department,
	}
}

// ToUserResponses maps a slice of domain users.
func ToUserResponses(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}
