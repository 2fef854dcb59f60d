package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparked/backend/internal/application/usecase/admin"
	domainerror "github.com/sparked/backend/internal/domain/error"
	"github.com/sparked/backend/internal/integration/entrypoint/dto"
	"github.com/sparked/backend/internal/integration/entrypoint/middleware"
)

// AdminController handles administrator endpoints.
type AdminController struct {
	listUsersUseCase *admin.ListUsersUseCase
}

// NewAdminController creates a new admin controller instance.
func NewAdminController(listUsersUseCase *admin.ListUsersUseCase) *AdminController {
	return &AdminController{listUsersUseCase: listUsersUseCase}
}

// ListUsers handles GET /admin/users requests.
func (c *AdminController) ListUsers(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthorized", string(domainerror.ErrCodeMissingToken)))
		return
	}

	var query dto.ListUsersQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		handleBindError(ctx, err, domainerror.ErrCodeMissingFields)
		return
	}

	output, err := c.listUsersUseCase.Execute(ctx.Request.Context(), admin.ListUsersInput{
		RequesterID: userID,
		Search:      query.Search,
		Verified:    query.Verified,
		Limit:       query.Limit,
		Offset:      query.Offset,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserListResponse(output.Users, output.Total, output.Limit, output.Offset))
}
