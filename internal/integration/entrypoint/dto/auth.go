// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/sparked/backend/internal/domain/entity"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RegisterRequest represents the registration form. It binds from JSON or a
// urlencoded form. Presence and strength are checked by the use case so that the
// caller gets the same error codes either way.
type RegisterRequest struct {
	FullName        string `json:"full_name" form:"full_name" binding:"max=150"`
	Email           string `json:"email" form:"email" binding:"max=255"`
	Phone           string `json:"phone" form:"phone" binding:"omitempty,phone"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// LoginRequest represents the login form.
type LoginRequest struct {
	Email      string `json:"email" form:"email" binding:"required,email"`
	Password   string `json:"password" form:"password" binding:"required"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

// VerifyEmailRequest carries the 6-digit code typed by the user.
type VerifyEmailRequest struct {
	Email string `json:"email" form:"email" binding:"required"`
	Code  string `json:"code" form:"code" binding:"required"`
}

// ResendVerificationRequest asks for a fresh verification code.
type ResendVerificationRequest struct {
	Email string `json:"email" form:"email" binding:"required"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ForgotPasswordRequest represents the request body for forgot password.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents the request body for password reset.
type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,strong_password"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// DeleteAccountRequest represents the request body for account deletion.
type DeleteAccountRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

// StatusResponse is the body returned by form-style endpoints.
type StatusResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Status       string       `json:"status"`
	RedirectURL  string       `json:"redirect_url"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// TokenResponse represents the response for token refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID            string     `json:"id"`
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	IsAdmin       bool       `json:"is_admin"`
	IsActive      bool       `json:"is_active"`
	EmailVerified bool       `json:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// NewErrorResponse builds an error body with the given message and code.
func NewErrorResponse(message, code string) ErrorResponse {
	return ErrorResponse{
		Status:  StatusError,
		Message: message,
		Code:    code,
	}
}

// Success builds a success body.
func Success(message, redirectURL string) StatusResponse {
	return StatusResponse{
		Status:      StatusSuccess,
		Message:     message,
		RedirectURL: redirectURL,
	}
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:            user.ID.String(),
		FullName:      user.FullName,
		Email:         user.Email,
		Phone:         user.Phone,
		IsAdmin:       user.IsAdmin,
		IsActive:      user.IsActive,
		EmailVerified: user.EmailVerified,
		LastLoginAt:   user.LastLoginAt,
		CreatedAt:     user.CreatedAt,
	}
}
