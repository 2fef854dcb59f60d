// Package router sets up the HTTP routing for the application.
package router

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/sparked/backend/internal/integration/entrypoint/controller"
	"github.com/sparked/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	authController     *controller.AuthController
	userController     *controller.UserController
	passwordController *controller.PasswordController
	adminController    *controller.AdminController
	rateLimiter        *middleware.RateLimiter
	authMiddleware     *middleware.AuthMiddleware
	trustedProxies     []string
}

// Controllers groups the handlers mounted by the router.
type Controllers struct {
	Health   *controller.HealthController
	Auth     *controller.AuthController
	User     *controller.UserController
	Password *controller.PasswordController
	Admin    *controller.AdminController
}

// NewRouter creates a new router instance with all dependencies.
// Only requests arriving from trustedProxies may set the client IP through forwarding headers.
func NewRouter(
	controllers Controllers,
	rateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	trustedProxies []string,
) *Router {
	return &Router{
		healthController:   controllers.Health,
		authController:     controllers.Auth,
		userController:     controllers.User,
		passwordController: controllers.Password,
		adminController:    controllers.Admin,
		rateLimiter:        rateLimiter,
		authMiddleware:     authMiddleware,
		trustedProxies:     trustedProxies,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) (*gin.Engine, error) {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()

	// gin trusts every proxy unless told otherwise; nil trusts none.
	if err := r.engine.SetTrustedProxies(r.trustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine, nil
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.passwordController != nil {
		v1.POST("/password/strength", r.passwordController.Strength)
		v1.POST("/register/readiness", r.passwordController.Readiness)
	}

	if r.authController != nil && r.rateLimiter != nil {
		limit := r.rateLimiter.Middleware()

		auth := v1.Group("/auth")
		{
			auth.POST("/register", limit, r.authController.Register)
			auth.POST("/login", limit, r.authController.Login)
			auth.POST("/verify-email", limit, r.authController.VerifyEmail)
			auth.POST("/resend-verification", limit, r.authController.ResendVerification)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authController.Logout)
			auth.POST("/forgot-password", limit, r.authController.ForgotPassword)
			auth.POST("/reset-password", r.authController.ResetPassword)
		}
	}

	if r.authMiddleware == nil {
		return
	}

	if r.userController != nil {
		users := v1.Group("/users")
		users.Use(r.authMiddleware.Authenticate())
		users.DELETE("/me", r.userController.DeleteAccount)
	}

	if r.adminController != nil {
		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), middleware.RequireAdmin())
		admin.GET("/users", r.adminController.ListUsers)
	}
}
