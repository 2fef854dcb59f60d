// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sparked/backend/config"
	"github.com/sparked/backend/internal/application/adapter"
	"github.com/sparked/backend/internal/application/usecase/admin"
	"github.com/sparked/backend/internal/application/usecase/auth"
	"github.com/sparked/backend/internal/application/usecase/password"
	"github.com/sparked/backend/internal/infra/cache"
	"github.com/sparked/backend/internal/infra/server/router"
	"github.com/sparked/backend/internal/integration/adapters"
	authcache "github.com/sparked/backend/internal/integration/cache"
	"github.com/sparked/backend/internal/integration/email"
	"github.com/sparked/backend/internal/integration/email/templates"
	"github.com/sparked/backend/internal/integration/entrypoint/controller"
	"github.com/sparked/backend/internal/integration/entrypoint/middleware"
	"github.com/sparked/backend/internal/integration/entrypoint/validation"
	"github.com/sparked/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	Router      *router.Router
	EmailWorker *email.Worker
	RateLimiter *middleware.RateLimiter
}

// Options overrides collaborators that differ between runtime and tests.
type Options struct {
	// EmailSender replaces the sender chosen from configuration.
	EmailSender adapter.EmailSender
	// CodeGenerator replaces the random verification code generator.
	CodeGenerator auth.CodeGenerator
	// DBHealthChecker replaces the ping against db.
	DBHealthChecker controller.HealthChecker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, opts Options) (*Injector, error) {
	if err := validation.Setup(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	// Repositories and stores
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)
	codeStore := authcache.NewVerificationStore(redisClient)
	lockoutStore := authcache.NewLockoutStore(redisClient)

	// Services
	passwordService := adapters.NewPasswordService(cfg.Security.BcryptCost)
	entropyEstimator := adapters.NewEntropyEstimator()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, adapters.TokenDurations{
		Access:             cfg.JWT.AccessTokenExpiry,
		Refresh:            cfg.JWT.RefreshTokenExpiry,
		RememberMeAccess:   cfg.JWT.RememberMeAccessExpiry,
		RememberMeRefresh:  cfg.JWT.RememberMeRefreshExpiry,
		PasswordResetToken: cfg.JWT.PasswordResetTokenExpiry,
	}, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(cfg.JWT.PasswordResetTokenExpiry, tokenRepo)
	emailService := email.NewService(emailQueueRepo)

	sender := opts.EmailSender
	if sender == nil {
		var err error
		if sender, err = newEmailSender(cfg); err != nil {
			return nil, err
		}
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval:    cfg.Email.PollInterval,
		BatchSize:       cfg.Email.BatchSize,
		SentRetention:   cfg.Email.SentRetention,
		CleanupInterval: email.DefaultWorkerConfig().CleanupInterval,
	})

	verification := auth.VerificationSettings{
		CodeTTL:        cfg.Verification.CodeTTL,
		MaxAttempts:    cfg.Verification.MaxAttempts,
		ResendCooldown: cfg.Verification.ResendCooldown,
		AppBaseURL:     cfg.Email.AppBaseURL,
	}
	lockout := auth.LockoutSettings{
		Threshold: cfg.Lockout.Threshold,
		Window:    cfg.Lockout.Window,
	}

	// Use cases
	authUseCases := controller.AuthUseCases{
		Register:           auth.NewRegisterUserUseCase(userRepo, passwordService, codeStore, emailService, verification, opts.CodeGenerator),
		Login:              auth.NewLoginUserUseCase(userRepo, passwordService, tokenService, lockoutStore, lockout),
		VerifyEmail:        auth.NewVerifyEmailUseCase(userRepo, codeStore, verification),
		ResendVerification: auth.NewResendVerificationUseCase(userRepo, codeStore, emailService, verification, opts.CodeGenerator),
		RefreshToken:       auth.NewRefreshTokenUseCase(userRepo, tokenService),
		Logout:             auth.NewLogoutUserUseCase(tokenService),
		ForgotPassword:     auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL),
		ResetPassword:      auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService),
	}
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService)
	evaluateStrengthUseCase := password.NewEvaluateStrengthUseCase(passwordService, entropyEstimator)
	checkReadinessUseCase := password.NewCheckReadinessUseCase()
	listUsersUseCase := admin.NewListUsersUseCase(userRepo)

	// Controllers
	dbHealth := opts.DBHealthChecker
	if dbHealth == nil {
		dbHealth = func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}
	}
	controllers := router.Controllers{
		Health:   controller.NewHealthController(dbHealth, func() bool { return cache.HealthCheck(redisClient) }),
		Auth:     controller.NewAuthController(authUseCases),
		User:     controller.NewUserController(deleteAccountUseCase),
		Password: controller.NewPasswordController(evaluateStrengthUseCase, checkReadinessUseCase),
		Admin:    controller.NewAdminController(listUsersUseCase),
	}

	// Middleware
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Redis:       redisClient,
		Router:      router.NewRouter(controllers, rateLimiter, authMiddleware, cfg.Server.TrustedProxies),
		EmailWorker: emailWorker,
		RateLimiter: rateLimiter,
	}, nil
}

// newEmailSender picks Resend when an API key is configured and the log sender otherwise.
func newEmailSender(cfg *config.Config) (adapter.EmailSender, error) {
	if cfg.Email.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, emails will only be logged")
		return email.NewLogSender(slog.Default()), nil
	}
	client, err := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, cfg.Email.ResendBaseURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}
