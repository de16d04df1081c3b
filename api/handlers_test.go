package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testToken = "test-cron-token"

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, date time.Time) (int, error) {
	args := m.Called(ctx, date)
	return args.Int(0), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() (*Server, *mockDispatcher) {
	dispatcher := new(mockDispatcher)
	return NewServer(":0", testToken, dispatcher), dispatcher
}

func doRequest(t *testing.T, server *Server, method, path string, headers map[string]string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func authHeaders() map[string]string {
	return map[string]string{
		HeaderInternalRequest: "true",
		HeaderCronAuthToken:   testToken,
	}
}

func TestPing(t *testing.T) {
	server, _ := newTestServer()

	w, body := doRequest(t, server, http.MethodGet, "/api/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"message": "pong", "status": "healthy"}, body)
}

func TestExecuteJob_WithDate(t *testing.T) {
	server, dispatcher := newTestServer()
	dispatcher.On("Dispatch", mock.Anything, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)).Return(3, nil).Once()

	w, body := doRequest(t, server, http.MethodPost, "/api/execute-job/07-01-2024", authHeaders())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Job execution started in background.", body["message"])
	dispatcher.AssertExpectations(t)
}

func TestExecuteJob_DefaultsToToday(t *testing.T) {
	server, dispatcher := newTestServer()
	before := time.Now().UTC()
	dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(date time.Time) bool {
		return !date.Before(before) && date.Sub(before) < time.Minute
	})).Return(0, nil).Once()

	w, body := doRequest(t, server, http.MethodPost, "/api/execute-job", authHeaders())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Job execution started in background.", body["message"])
	dispatcher.AssertExpectations(t)
}

func TestExecuteJob_InvalidDate(t *testing.T) {
	server, dispatcher := newTestServer()

	for _, path := range []string{"/api/execute-job/2024-07-01", "/api/execute-job/13-01-2024", "/api/execute-job/today"} {
		t.Run(path, func(t *testing.T) {
			_, body := doRequest(t, server, http.MethodPost, path, authHeaders())
			assert.Equal(t, "Date must be in MM-DD-YYYY format.", body["error"])
		})
	}
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestExecuteJob_Unauthorized(t *testing.T) {
	server, dispatcher := newTestServer()

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"no headers", nil},
		{"not internal", map[string]string{HeaderCronAuthToken: testToken}},
		{"internal false", map[string]string{HeaderInternalRequest: "false", HeaderCronAuthToken: testToken}},
		{"wrong token", map[string]string{HeaderInternalRequest: "true", HeaderCronAuthToken: "nope"}},
		{"missing token", map[string]string{HeaderInternalRequest: "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := doRequest(t, server, http.MethodPost, "/api/execute-job/07-01-2024", tt.headers)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Unauthorized request.", body["detail"])
		})
	}
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestExecuteJob_InternalHeaderIsCaseInsensitive(t *testing.T) {
	server, dispatcher := newTestServer()
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(1, nil).Once()

	w, _ := doRequest(t, server, http.MethodPost, "/api/execute-job/07-01-2024", map[string]string{
		HeaderInternalRequest: "TRUE",
		HeaderCronAuthToken:   testToken,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	dispatcher.AssertExpectations(t)
}

func TestExecuteJob_DispatchError(t *testing.T) {
	server, dispatcher := newTestServer()
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(0, errors.New("connection refused")).Once()

	w, body := doRequest(t, server, http.MethodPost, "/api/execute-job/07-01-2024", authHeaders())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, body["error"])
}

func TestNewServer_EmptyTokenRejectsEverything(t *testing.T) {
	dispatcher := new(mockDispatcher)
	server := NewServer(":0", "", dispatcher)

	w, _ := doRequest(t, server, http.MethodPost, "/api/execute-job", map[string]string{
		HeaderInternalRequest: "true",
		HeaderCronAuthToken:   "",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
