package dto

import "github.com/sparked/backend/internal/domain/entity"

// ListUsersQuery represents the query string of the admin user listing.
type ListUsersQuery struct {
	Search   string `form:"search" binding:"max=255"`
	Verified *bool  `form:"verified"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset   int    `form:"offset" binding:"omitempty,min=0"`
}

// UserListResponse is a page of users.
type UserListResponse struct {
	Users  []UserResponse `json:"users"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ToUserListResponse converts users into their wire form.
func ToUserListResponse(users []*entity.User, total int64, limit, offset int) UserListResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return UserListResponse{
		Users:  out,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}
