//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/sparked/backend/config"
	"github.com/sparked/backend/internal/infra/dependency"
	"github.com/sparked/backend/internal/integration/persistence/model"
	"github.com/sparked/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// resendEmailsPath is the Resend endpoint the email worker posts to.
const resendEmailsPath = "/emails"

// suite holds what is shared by every scenario. The server, database and
// Redis are built once; scenarios reset their contents.
type suite struct {
	db       *mock.Db
	redis    *mock.Redis
	provider *mock.ApiMock
	injector *dependency.Injector
	server   *httptest.Server

	mu       sync.Mutex
	nextCode string
}

var (
	shared     *suite
	sharedOnce sync.Once
)

func getSuite() *suite {
	sharedOnce.Do(func() {
		shared = newSuite()
	})
	return shared
}

func newSuite() *suite {
	gin.SetMode(gin.TestMode)

	s := &suite{
		db:       mock.NewDb(model.All()...),
		redis:    mock.NewRedis(),
		provider: mock.NewApiServer(),
		nextCode: "123456",
	}
	s.provider.Start()

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Database.Driver = "sqlite"
	cfg.JWT.Secret = testJWTSecret
	cfg.Security.BcryptCost = 4
	cfg.RateLimit.MaxAttempts = 1000
	cfg.Email.ResendAPIKey = "re_test_key"
	cfg.Email.ResendBaseURL = s.provider.GetUrl()
	cfg.Email.WorkerEnabled = false

	injector, err := dependency.NewInjector(cfg, s.db.DbConn, s.redis.Client, dependency.Options{
		CodeGenerator: s.generateCode,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to build injector: %v", err))
	}
	s.injector = injector
	engine, err := injector.Router.Setup(cfg.Server.Environment)
	if err != nil {
		panic(fmt.Sprintf("failed to set up router: %v", err))
	}
	s.server = httptest.NewServer(engine)

	return s
}

func (s *suite) generateCode() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextCode, nil
}

func (s *suite) setNextCode(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCode = code
}

func (s *suite) reset() error {
	if err := s.db.ClearDB(); err != nil {
		return err
	}
	if err := mock.ClearRedis(s.redis); err != nil {
		return err
	}
	s.injector.RateLimiter.Reset()
	s.provider.Reset()
	s.provider.SetResponse(http.MethodPost, resendEmailsPath, http.StatusOK, map[string]any{"id": "re_mock"})
	s.setNextCode("123456")
	return nil
}

func (s *suite) close() {
	s.server.Close()
	s.provider.Close()
	s.redis.Server.Close()
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		getSuite()
	})

	ctx.AfterSuite(func() {
		getSuite().close()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		suite:  getSuite(),
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, test.suite.reset()
	})

	registerSetupSteps(ctx, test)
	registerRequestSteps(ctx, test)
	registerResponseSteps(ctx, test)
	registerStateSteps(ctx, test)
}
