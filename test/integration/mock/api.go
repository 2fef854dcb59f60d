package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ReceivedRequest is a request captured by ApiMock.
type ReceivedRequest struct {
	Headers map[string]string
	Body    map[string]any
}

// ApiMock stands in for a third-party HTTP API. Responses are configured per
// method and path; anything unconfigured answers 200 with an empty object.
type ApiMock struct {
	mu        sync.Mutex
	received  map[string][]ReceivedRequest
	responses map[string]mockResponse
	server    *httptest.Server
}

type mockResponse struct {
	status int
	body   any
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		received:  map[string][]ReceivedRequest{},
		responses: map[string]mockResponse{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	body, _ := io.ReadAll(r.Body)
	var request map[string]any
	_ = json.Unmarshal(body, &request)
	if request == nil {
		request = map[string]any{}
	}

	headers := map[string]string{}
	for name, values := range r.Header {
		headers[name] = values[0]
	}

	a.mu.Lock()
	a.received[key] = append(a.received[key], ReceivedRequest{Headers: headers, Body: request})
	resp, ok := a.responses[key]
	a.mu.Unlock()

	if !ok {
		resp = mockResponse{status: http.StatusOK, body: map[string]any{}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_ = json.NewEncoder(w).Encode(resp.body)
}

// SetResponse configures the answer for every later call to method and path.
func (a *ApiMock) SetResponse(method, path string, status int, response any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+path] = mockResponse{status: status, body: response}
}

// Requests returns the calls received on method and path, oldest first.
func (a *ApiMock) Requests(method, path string) []ReceivedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]ReceivedRequest, len(a.received[method+path]))
	copy(out, a.received[method+path])
	return out
}

// Reset forgets captured requests and configured responses.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.received = map[string][]ReceivedRequest{}
	a.responses = map[string]mockResponse{}
}
