package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparked/backend/internal/application/usecase/password"
	domainerror "github.com/sparked/backend/internal/domain/error"
	"github.com/sparked/backend/internal/domain/valueobject"
	"github.com/sparked/backend/internal/integration/entrypoint/dto"
)

// PasswordController exposes the strength evaluator and the registration form gate.
// Both endpoints are read-only.
type PasswordController struct {
	evaluateUseCase  *password.EvaluateStrengthUseCase
	readinessUseCase *password.CheckReadinessUseCase
}

// NewPasswordController creates a new password controller instance.
func NewPasswordController(
	evaluateUseCase *password.EvaluateStrengthUseCase,
	readinessUseCase *password.CheckReadinessUseCase,
) *PasswordController {
	return &PasswordController{
		evaluateUseCase:  evaluateUseCase,
		readinessUseCase: readinessUseCase,
	}
}

// Strength handles POST /password/strength requests.
func (c *PasswordController) Strength(ctx *gin.Context) {
	var req dto.PasswordStrengthRequest
	if err := ctx.ShouldBind(&req); err != nil {
		handleBindError(ctx, err, domainerror.ErrCodeMissingFields)
		return
	}

	output, err := c.evaluateUseCase.Execute(ctx.Request.Context(), password.EvaluateStrengthInput{
		Password: req.Password,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPasswordStrengthResponse(output.Evaluation, output.EntropyBits))
}

// Readiness handles POST /register/readiness requests.
func (c *PasswordController) Readiness(ctx *gin.Context) {
	var req dto.FormReadinessRequest
	if err := ctx.ShouldBind(&req); err != nil {
		handleBindError(ctx, err, domainerror.ErrCodeMissingFields)
		return
	}

	output, err := c.readinessUseCase.Execute(ctx.Request.Context(), password.CheckReadinessInput{
		Fields:       req.Fields(),
		Extended:     req.Extended,
		ChangedField: valueobject.FormField(req.ChangedField),
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	resp := dto.ToFormReadinessResponse(output.Readiness)
	resp.Reevaluated = output.Reevaluated
	ctx.JSON(http.StatusOK, resp)
}
