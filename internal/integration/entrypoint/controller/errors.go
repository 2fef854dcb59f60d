package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/sparked/backend/internal/domain/error"
	"github.com/sparked/backend/internal/integration/entrypoint/dto"
	"github.com/sparked/backend/internal/integration/entrypoint/validation"
)

// handleAuthError writes the HTTP response for an error returned by a use case.
func handleAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(statusCodeForAuthError(authErr.Code), dto.NewErrorResponse(authErr.Message, string(authErr.Code)))
		return
	}

	slog.Error("Unhandled error",
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse("An internal error occurred", ""))
}

// handleBindError writes a 400 for a request that failed binding.
func handleBindError(ctx *gin.Context, err error, fallback domainerror.AuthErrorCode) {
	message, code := validation.BindError(err, fallback)
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(message, string(code)))
}

// statusCodeForAuthError maps auth error codes to HTTP status codes.
func statusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists,
		domainerror.ErrCodeFullNameExists,
		domainerror.ErrCodePhoneExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodePasswordMismatch,
		domainerror.ErrCodeInvalidPhone,
		domainerror.ErrCodePasswordTooLong,
		domainerror.ErrCodeInvalidResetToken,
		domainerror.ErrCodeExpiredResetToken,
		domainerror.ErrCodeInvalidConfirmation,
		domainerror.ErrCodeInvalidVerificationCode,
		domainerror.ErrCodeVerificationCodeExpired,
		domainerror.ErrCodeVerificationCodeMismatch:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeAccountInactive,
		domainerror.ErrCodeEmailNotVerified,
		domainerror.ErrCodeAdminRequired:
		return http.StatusForbidden
	case domainerror.ErrCodeAccountLocked:
		return http.StatusLocked
	case domainerror.ErrCodeRateLimited,
		domainerror.ErrCodeResendCooldown:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
