package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparked/backend/internal/application/usecase/auth"
	domainerror "github.com/sparked/backend/internal/domain/error"
	"github.com/sparked/backend/internal/integration/entrypoint/dto"
	"github.com/sparked/backend/internal/integration/entrypoint/middleware"
)

// UserController handles endpoints on the authenticated user's own account.
type UserController struct {
	deleteAccountUseCase *auth.DeleteAccountUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(deleteAccountUseCase *auth.DeleteAccountUseCase) *UserController {
	return &UserController{
		deleteAccountUseCase: deleteAccountUseCase,
	}
}

// DeleteAccount handles DELETE /users/me requests.
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthorized", string(domainerror.ErrCodeMissingToken)))
		return
	}

	var req dto.DeleteAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindError(ctx, err, domainerror.ErrCodeMissingFields)
		return
	}

	_, err := c.deleteAccountUseCase.Execute(ctx.Request.Context(), auth.DeleteAccountInput{
		UserID:       userID,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
