//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cucumber/godog"

	"github.com/sparked/backend/internal/domain/entity"
	"github.com/sparked/backend/internal/integration/adapters"
	"github.com/sparked/backend/internal/integration/persistence"
	"github.com/sparked/backend/internal/integration/persistence/model"
)

type testContext struct {
	suite        *suite
	client       *http.Client
	headers      map[string]string
	response     *response
	accessToken  string
	refreshToken string
}

type response struct {
	status int
	raw    []byte
	body   any
}

var phoneSeq atomic.Int64

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
}

func registerSetupSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Given(`^the API server is running$`, t.theAPIServerIsRunning)
	ctx.Given(`^a verified user "([^"]*)" exists with email "([^"]*)" and password "([^"]*)"$`, t.aVerifiedUserExists)
	ctx.Given(`^an unverified user "([^"]*)" exists with email "([^"]*)" and password "([^"]*)"$`, t.anUnverifiedUserExists)
	ctx.Given(`^an admin "([^"]*)" exists with email "([^"]*)" and password "([^"]*)"$`, t.anAdminExists)
	ctx.Given(`^the next verification code is "(\d{6})"$`, t.theNextVerificationCodeIs)
	ctx.Given(`^the email provider responds with status (\d+)$`, t.theEmailProviderRespondsWithStatus)
	ctx.Given(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, t.iAmLoggedInAs)
	ctx.Given(`^the header is empty$`, t.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, t.theHeaderContainsTheKeyWith)
}

func registerRequestSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody)
	ctx.When(`^I submit the form "([^"]*)" with:$`, t.iSubmitTheFormWith)
	ctx.When(`^I fail to log in (\d+) times as "([^"]*)"$`, t.iFailToLogInTimesAs)
	ctx.When(`^I refresh my session$`, t.iRefreshMySession)
	ctx.When(`^the email worker runs$`, t.theEmailWorkerRuns)
	ctx.When(`^the verification code expires$`, t.theVerificationCodeExpires)
}

func registerResponseSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Then(`^the response status should be (\d+)$`, t.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, t.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, t.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, t.theResponseFieldShouldNotExist)
}

func registerStateSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the user "([^"]*)" should be verified$`, t.theUserShouldBeVerified)
	ctx.Then(`^the user "([^"]*)" should not be verified$`, t.theUserShouldNotBeVerified)
	ctx.Then(`^the email provider should have received (\d+) emails?$`, t.theEmailProviderShouldHaveReceived)
	ctx.Then(`^the last email should be sent to "([^"]*)" and contain "([^"]*)"$`, t.theLastEmailShouldBeSentTo)
	ctx.Then(`^the email queue should have (\d+) "([^"]*)" jobs?$`, t.theEmailQueueShouldHaveJobs)
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.suite.server.URL + "/health")
	if err != nil {
		return fmt.Errorf("server is not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("expected healthy server, got status %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) aVerifiedUserExists(name, email, password string) error {
	return t.createUser(name, email, password, true, false)
}

func (t *testContext) anUnverifiedUserExists(name, email, password string) error {
	return t.createUser(name, email, password, false, false)
}

func (t *testContext) anAdminExists(name, email, password string) error {
	return t.createUser(name, email, password, true, true)
}

func (t *testContext) createUser(name, email, password string, verified, admin bool) error {
	hash, err := adapters.NewPasswordService(4).HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	phone := "555" + fmt.Sprintf("%07d", phoneSeq.Add(1))
	user := entity.NewUser(name, strings.ToLower(email), phone, hash)
	user.EmailVerified = verified
	user.IsAdmin = admin

	return persistence.NewUserRepository(t.suite.db.DbConn).Create(context.Background(), user)
}

func (t *testContext) theNextVerificationCodeIs(code string) error {
	t.suite.setNextCode(code)
	return nil
}

func (t *testContext) theEmailProviderRespondsWithStatus(status int) error {
	body := map[string]any{"id": "re_mock"}
	if status >= 300 {
		// The Resend client surfaces only the message, so it carries the status.
		body = map[string]any{"statusCode": status, "name": "error", "message": fmt.Sprintf("%d %s", status, http.StatusText(status))}
	}
	t.suite.provider.SetResponse(http.MethodPost, resendEmailsPath, status, body)
	return nil
}

func (t *testContext) iAmLoggedInAs(email, password string) error {
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	if err := t.send(http.MethodPost, "/api/v1/auth/login", "application/json", bytes.NewReader(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("login failed with status %d: %s", t.response.status, string(t.response.raw))
	}

	access, _ := lookup(t.response.body, "access_token")
	refresh, _ := lookup(t.response.body, "refresh_token")
	t.accessToken = fmt.Sprintf("%v", access)
	t.refreshToken = fmt.Sprintf("%v", refresh)
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, endpoint string) error {
	return t.send(method, endpoint, "", nil)
}

func (t *testContext) iSendARequestToWithBody(method, endpoint string, body *godog.DocString) error {
	return t.send(method, endpoint, "application/json", strings.NewReader(body.Content))
}

func (t *testContext) iSubmitTheFormWith(endpoint string, table *godog.Table) error {
	form := url.Values{}
	for _, row := range table.Rows {
		if len(row.Cells) != 2 {
			return fmt.Errorf("form rows need a name and a value")
		}
		form.Set(row.Cells[0].Value, row.Cells[1].Value)
	}
	return t.send(http.MethodPost, endpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

func (t *testContext) iFailToLogInTimesAs(times int, email string) error {
	payload, _ := json.Marshal(map[string]string{"email": email, "password": "Wrong-pass1!"})
	for i := 0; i < times; i++ {
		if err := t.send(http.MethodPost, "/api/v1/auth/login", "application/json", bytes.NewReader(payload)); err != nil {
			return err
		}
		if t.response.status != http.StatusUnauthorized {
			return fmt.Errorf("attempt %d: expected status 401, got %d", i+1, t.response.status)
		}
	}
	return nil
}

func (t *testContext) iRefreshMySession() error {
	payload, _ := json.Marshal(map[string]string{"refresh_token": t.refreshToken})
	return t.send(http.MethodPost, "/api/v1/auth/refresh", "application/json", bytes.NewReader(payload))
}

func (t *testContext) theEmailWorkerRuns() error {
	t.suite.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) theVerificationCodeExpires() error {
	t.suite.redis.Server.FastForward(t.suite.injector.Config.Verification.CodeTTL + time.Second)
	return nil
}

func (t *testContext) send(method, endpoint, contentType string, body io.Reader) error {
	req, err := http.NewRequest(method, t.suite.server.URL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}
	if t.accessToken != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var decoded any
	_ = json.Unmarshal(raw, &decoded)
	t.response = &response{status: resp.StatusCode, raw: raw, body: decoded}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expected int) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if t.response.status != expected {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expected, t.response.status, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil || !json.Valid(t.response.raw) {
		return fmt.Errorf("response is not valid JSON")
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if t.response == nil || !strings.Contains(string(t.response.raw), expected) {
		return fmt.Errorf("response does not contain '%s'", expected)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expected string) error {
	value, ok := lookup(t.response.body, field)
	if !ok {
		return fmt.Errorf("field '%s' not found in response: %s", field, string(t.response.raw))
	}
	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if _, ok := lookup(t.response.body, field); !ok {
		return fmt.Errorf("field '%s' not found in response: %s", field, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldNotExist(field string) error {
	if _, ok := lookup(t.response.body, field); ok {
		return fmt.Errorf("field '%s' should not be in response: %s", field, string(t.response.raw))
	}
	return nil
}

// lookup walks a dotted path such as "strength.requirements.0.name".
func lookup(body any, path string) (any, bool) {
	current := body
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, false
			}
			current = value
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			current = node[i]
		default:
			return nil, false
		}
	}
	return current, true
}

func (t *testContext) theDbShouldContainObjectsInTheTable(expected int, table string) error {
	count, err := t.suite.db.Count(table)
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", table, err)
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
	return nil
}

func (t *testContext) findUser(email string) (*model.UserModel, error) {
	var user model.UserModel
	if err := t.suite.db.DbConn.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, fmt.Errorf("user %s not found: %w", email, err)
	}
	return &user, nil
}

func (t *testContext) theUserShouldBeVerified(email string) error {
	user, err := t.findUser(email)
	if err != nil {
		return err
	}
	if !user.EmailVerified {
		return fmt.Errorf("expected %s to be verified", email)
	}
	return nil
}

func (t *testContext) theUserShouldNotBeVerified(email string) error {
	user, err := t.findUser(email)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return fmt.Errorf("expected %s not to be verified", email)
	}
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceived(expected int) error {
	got := len(t.suite.provider.Requests(http.MethodPost, resendEmailsPath))
	if got != expected {
		return fmt.Errorf("expected %d emails, got %d", expected, got)
	}
	return nil
}

func (t *testContext) theLastEmailShouldBeSentTo(recipient, fragment string) error {
	requests := t.suite.provider.Requests(http.MethodPost, resendEmailsPath)
	if len(requests) == 0 {
		return fmt.Errorf("no email was sent")
	}
	last := requests[len(requests)-1].Body

	to, _ := lookup(last, "to.0")
	if fmt.Sprintf("%v", to) != recipient {
		return fmt.Errorf("expected email to %s, got %v", recipient, to)
	}
	text, _ := last["text"].(string)
	html, _ := last["html"].(string)
	if !strings.Contains(text, fragment) && !strings.Contains(html, fragment) {
		return fmt.Errorf("email body does not contain '%s'", fragment)
	}
	return nil
}

func (t *testContext) theEmailQueueShouldHaveJobs(expected int, status string) error {
	var count int64
	err := t.suite.db.DbConn.Model(&model.EmailQueueModel{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to count email jobs: %w", err)
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d %s jobs, got %d", expected, status, count)
	}
	return nil
}
