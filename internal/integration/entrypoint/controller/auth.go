// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparked/backend/internal/application/usecase/auth"
	domainerror "github.com/sparked/backend/internal/domain/error"
	"github.com/sparked/backend/internal/integration/entrypoint/dto"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	registerUseCase       *auth.RegisterUserUseCase
	loginUseCase          *auth.LoginUserUseCase
	verifyEmailUseCase    *auth.VerifyEmailUseCase
	resendUseCase         *auth.ResendVerificationUseCase
	refreshTokenUseCase   *auth.RefreshTokenUseCase
	logoutUseCase         *auth.LogoutUserUseCase
	forgotPasswordUseCase *auth.ForgotPasswordUseCase
	resetPasswordUseCase  *auth.ResetPasswordUseCase
}

// AuthUseCases groups the use cases served by AuthController.
type AuthUseCases struct {
	Register           *auth.RegisterUserUseCase
	Login              *auth.LoginUserUseCase
	VerifyEmail        *auth.VerifyEmailUseCase
	ResendVerification *auth.ResendVerificationUseCase
	RefreshToken       *auth.RefreshTokenUseCase
	Logout             *auth.LogoutUserUseCase
	ForgotPassword     *auth.ForgotPasswordUseCase
	ResetPassword      *auth.ResetPasswordUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(uc AuthUseCases) *AuthController {
	return &AuthController{
		registerUseCase:       uc.Register,
		loginUseCase:          uc.Login,
		verifyEmailUseCase:    uc.VerifyEmail,
		resendUseCase:         uc.ResendVerification,
		refreshTokenUseCase:   uc.RefreshToken,
		logoutUseCase:         uc.Logout,
		forgotPasswordUseCase: uc.ForgotPassword,
		resetPasswordUseCase:  uc.ResetPassword,
	}
}

// Register handles POST /auth/register requests. The body may be JSON or a form.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		handleBindError(ctx, err, domainerror.ErrCodeMissingFields)
		return
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success(
		"Registration successful. Check your email for a verification code.",
		output.RedirectURL,
	))
}

// Login handles POST /auth/login requests. The body may be JSON or a form.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		handleBindError(ctx, err, domainerror.ErrCodeMissingFields)
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Status:       dto.StatusSuccess,
		RedirectURL:  output.RedirectURL,
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         dto.ToUserResponse(output.User),
	})
}

// VerifyEmail handles POST /auth/verify-email requests.
func (c *AuthController) VerifyEmail(ctx *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := ctx.ShouldBind(&req); err != nil {
		handleBindError(ctx, err, domainerror.ErrCodeInvalidVerificationCode)
		return
	}

	output, err := c.verifyEmailUseCase.Execute(ctx.Request.Context(), auth.VerifyEmailInput{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(output.Message, output.RedirectURL))
}

// ResendVerification handles POST /auth/resend-verification requests.
func (c *AuthController) ResendVerification(ctx *gin.Context) {
	var req dto.ResendVerificationRequest
	if err := ctx.ShouldBind(&req); err != nil {
		handleBindError(ctx, err, domainerror.ErrCodeInvalidEmail)
		return
	}

	output, err := c.resendUseCase.Execute(ctx.Request.Context(), auth.ResendVerificationInput{
		Email: req.Email,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(output.Message, ""))
}

// RefreshToken handles POST /auth/refresh requests.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindError(ctx, err, domainerror.ErrCodeMissingToken)
		return
	}

	output, err := c.refreshTokenUseCase.Execute(ctx.Request.Context(), auth.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	})
}

// Logout handles POST /auth/logout requests. It always succeeds.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, dto.Success("Successfully logged out", "/login"))
		return
	}

	output, _ := c.logoutUseCase.Execute(ctx.Request.Context(), auth.LogoutUserInput{
		RefreshToken: req.RefreshToken,
	})

	ctx.JSON(http.StatusOK, dto.Success(output.Message, output.RedirectURL))
}

// ForgotPassword handles POST /auth/forgot-password requests.
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindError(ctx, err, domainerror.ErrCodeInvalidEmail)
		return
	}

	output, err := c.forgotPasswordUseCase.Execute(ctx.Request.Context(), auth.ForgotPasswordInput{
		Email: req.Email,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(output.Message, ""))
}

// ResetPassword handles POST /auth/reset-password requests.
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindError(ctx, err, domainerror.ErrCodeMissingFields)
		return
	}

	output, err := c.resetPasswordUseCase.Execute(ctx.Request.Context(), auth.ResetPasswordInput{
		Token:           req.Token,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(output.Message, output.RedirectURL))
}
