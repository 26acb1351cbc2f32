package http

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/placement-portal/experience-service/internal/api/http/handlers"
	"github.com/placement-portal/experience-service/internal/auth"
	"github.com/placement-portal/experience-service/internal/config"
	"github.com/placement-portal/experience-service/internal/events"
	"github.com/placement-portal/experience-service/internal/observability"
	"github.com/placement-portal/experience-service/internal/repository"
	"github.com/placement-portal/experience-service/internal/service"
)

type testServer struct {
	t   *testing.T
	app *fiber.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	store := repository.NewMemoryStore()
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(config.AuthConfig{
		JWTSecret:           "test-secret",
		AccessTokenTTLHours: 1,
		BcryptCost:          bcrypt.MinCost,
	}, service.AuthDependencies{UserRepo: store.Users, Logger: logger})
	experienceService := service.NewExperienceService(service.ExperienceDependencies{
		ExperienceRepo: store.Experiences,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	discussionService := service.NewDiscussionService(service.DiscussionDependencies{
		DiscussionRepo: store.Discussions,
		UserRepo:       store.Users,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, MiddlewareConfig{Timeout: 5 * time.Second})
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", map[string]repository.Pinger{"store": store.Health}, metrics),
		Users:          handlers.NewUsersHandler(authService, service.NewUserService(store.Users, experienceService)),
		Experiences:    handlers.NewExperiencesHandler(experienceService, logger),
		Discussions:    handlers.NewDiscussionsHandler(discussionService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), store.Users),
	})
	return &testServer{t: t, app: app}
}

// do sends a request and decodes the JSON body.
func (s *testServer) do(method, path, token string, body any) (int, map[string]any) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	if err != nil {
		s.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	decoded := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil && err != io.EOF {
		s.t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return resp.StatusCode, decoded
}

func (s *testServer) register(email, name string) (token, userID string) {
	s.t.Helper()
	status, body := s.do(nethttp.MethodPost, "/api/auth/register", "", map[string]any{
		"email": email, "password": "secret123", "name": name,
	})
	if status != nethttp.StatusCreated {
		s.t.Fatalf("register %s: status %d body %v", email, status, body)
	}
	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	return data["auth"].(map[string]any)["token"].(string), user["id"].(string)
}

func (s *testServer) createExperience(token string, payload map[string]any) string {
	s.t.Helper()
	status, body := s.do(nethttp.MethodPost, "/api/experiences", token, payload)
	if status != nethttp.StatusCreated {
		s.t.Fatalf("create experience: status %d body %v", status, body)
	}
	return body["data"].(map[string]any)["id"].(string)
}

func dataList(t *testing.T, body map[string]any) []map[string]any {
	t.Helper()
	raw, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("data is not a list: %v", body)
	}
	out := make([]map[string]any, len(raw))
	for i := range raw {
		out[i] = raw[i].(map[string]any)
	}
	return out
}

func errorCode(body map[string]any) string {
	errBody, _ := body["error"].(map[string]any)
	code, _ := errBody["code"].(string)
	return code
}

func TestExperienceLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	ownerToken, ownerID := srv.register("owner@example.com", "Owner")
	otherToken, _ := srv.register("other@example.com", "Other")

	googleID := srv.createExperience(ownerToken, map[string]any{
		"company": "Google", "type": "placement", "package": 30, "gotSelected": true,
		"userId": "someone-else",
	})
	srv.createExperience(otherToken, map[string]any{
		"company": "Startup", "type": "internship", "gotSelected": false,
	})

	status, body := srv.do(nethttp.MethodGet, "/api/experiences/"+googleID, "", nil)
	if status != nethttp.StatusOK {
		t.Fatalf("get: %d %v", status, body)
	}
	if got := body["data"].(map[string]any)["userId"]; got != ownerID {
		t.Fatalf("owner taken from body: userId = %v", got)
	}

	status, body = srv.do(nethttp.MethodGet, "/api/experiences?company=goo", "", nil)
	if status != nethttp.StatusOK || len(dataList(t, body)) != 1 {
		t.Fatalf("company filter: %d %v", status, body)
	}
	_, body = srv.do(nethttp.MethodGet, "/api/experiences?minLPA=20", "", nil)
	if items := dataList(t, body); len(items) != 1 || items[0]["id"] != googleID {
		t.Fatalf("minLPA alias: %v", items)
	}
	_, body = srv.do(nethttp.MethodGet, "/api/experiences?minPackage=abc&minLPA=20", "", nil)
	if items := dataList(t, body); len(items) != 1 || items[0]["id"] != googleID {
		t.Fatalf("valid alias behind malformed primary: %v", items)
	}
	_, body = srv.do(nethttp.MethodGet, "/api/experiences?minPackage=abc", "", nil)
	if items := dataList(t, body); len(items) != 2 {
		t.Fatalf("malformed bound must be ignored: %v", items)
	}

	status, body = srv.do(nethttp.MethodDelete, "/api/experiences/"+googleID, otherToken, nil)
	if status != nethttp.StatusForbidden || errorCode(body) != "FORBIDDEN" {
		t.Fatalf("foreign delete: %d %v", status, body)
	}
	status, body = srv.do(nethttp.MethodPut, "/api/experiences/"+googleID, ownerToken, map[string]any{"role": "SWE"})
	if status != nethttp.StatusOK || body["data"].(map[string]any)["role"] != "SWE" {
		t.Fatalf("owner update: %d %v", status, body)
	}
	status, body = srv.do(nethttp.MethodDelete, "/api/experiences/"+googleID, ownerToken, nil)
	if status != nethttp.StatusOK || body["data"].(map[string]any)["deletedId"] != googleID {
		t.Fatalf("owner delete: %d %v", status, body)
	}
	status, body = srv.do(nethttp.MethodGet, "/api/experiences/"+googleID, "", nil)
	if status != nethttp.StatusNotFound || errorCode(body) != "NOT_FOUND" {
		t.Fatalf("get after delete: %d %v", status, body)
	}
}

func TestMineRouteIsNotShadowedByID(t *testing.T) {
	srv := newTestServer(t)
	token, _ := srv.register("me@example.com", "Me")
	srv.createExperience(token, map[string]any{"company": "Amazon"})

	status, body := srv.do(nethttp.MethodGet, "/api/experiences/mine", token, nil)
	if status != nethttp.StatusOK || len(dataList(t, body)) != 1 {
		t.Fatalf("mine: %d %v", status, body)
	}
	status, _ = srv.do(nethttp.MethodGet, "/api/experiences/mine", "", nil)
	if status != nethttp.StatusUnauthorized {
		t.Fatalf("mine without token: %d", status)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)
	for _, tc := range []struct{ method, path string }{
		{nethttp.MethodPost, "/api/experiences"},
		{nethttp.MethodPut, "/api/experiences/x"},
		{nethttp.MethodDelete, "/api/experiences/x"},
		{nethttp.MethodPost, "/api/discussions/Google"},
		{nethttp.MethodDelete, "/api/discussions/x"},
		{nethttp.MethodGet, "/api/users/me"},
	} {
		status, body := srv.do(tc.method, tc.path, "", nil)
		if status != nethttp.StatusUnauthorized || errorCode(body) != "UNAUTHORIZED" {
			t.Fatalf("%s %s: %d %v", tc.method, tc.path, status, body)
		}
	}
	status, _ := srv.do(nethttp.MethodGet, "/api/users/me", "not-a-token", nil)
	if status != nethttp.StatusUnauthorized {
		t.Fatalf("bad token: %d", status)
	}
}

func TestDiscussionThreadOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	aliceToken, _ := srv.register("alice@example.com", "Alice")
	bobToken, _ := srv.register("bob@example.com", "Bob")

	status, body := srv.do(nethttp.MethodPost, "/api/discussions/Goldman%20Sachs", aliceToken, map[string]any{"message": " hello "})
	if status != nethttp.StatusCreated {
		t.Fatalf("post: %d %v", status, body)
	}
	msg := body["data"].(map[string]any)
	if msg["company"] != "Goldman Sachs" || msg["message"] != "hello" {
		t.Fatalf("unexpected message: %v", msg)
	}
	if author := msg["author"].(map[string]any); author["name"] != "Alice" {
		t.Fatalf("author = %v", author)
	}
	msgID := msg["id"].(string)

	status, body = srv.do(nethttp.MethodPost, "/api/discussions/Goldman%20Sachs", aliceToken, map[string]any{"message": strings.Repeat("x", 501)})
	if status != nethttp.StatusBadRequest || errorCode(body) != "VALIDATION_FAILED" {
		t.Fatalf("long message: %d %v", status, body)
	}

	status, _ = srv.do(nethttp.MethodPut, "/api/discussions/"+msgID, bobToken, map[string]any{"message": "mine now"})
	if status != nethttp.StatusForbidden {
		t.Fatalf("foreign edit: %d", status)
	}
	status, _ = srv.do(nethttp.MethodDelete, "/api/discussions/"+msgID, bobToken, nil)
	if status != nethttp.StatusForbidden {
		t.Fatalf("foreign delete: %d", status)
	}

	_, body = srv.do(nethttp.MethodGet, "/api/discussions/Goldman%20Sachs", "", nil)
	if items := dataList(t, body); len(items) != 1 || items[0]["message"] != "hello" {
		t.Fatalf("thread after forbidden attempts: %v", items)
	}

	status, body = srv.do(nethttp.MethodDelete, "/api/discussions/"+msgID, aliceToken, nil)
	if status != nethttp.StatusOK || body["data"].(map[string]any)["deletedId"] != msgID {
		t.Fatalf("owner delete: %d %v", status, body)
	}
}

func TestAuthAndProfileOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token, userID := srv.register("student@example.com", "Student")

	status, body := srv.do(nethttp.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "student@example.com", "password": "x", "name": "Dup",
	})
	if status != nethttp.StatusConflict {
		t.Fatalf("duplicate register: %d %v", status, body)
	}

	status, body = srv.do(nethttp.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "student@example.com", "password": "wrong",
	})
	if status != nethttp.StatusUnauthorized {
		t.Fatalf("bad login: %d %v", status, body)
	}

	srv.createExperience(token, map[string]any{"company": "Adobe"})
	status, body = srv.do(nethttp.MethodGet, "/api/users/"+userID, "", nil)
	if status != nethttp.StatusOK {
		t.Fatalf("profile: %d %v", status, body)
	}
	data := body["data"].(map[string]any)
	if data["experienceCount"] != float64(1) {
		t.Fatalf("experienceCount = %v", data["experienceCount"])
	}
	if _, leaked := data["user"].(map[string]any)["password"]; leaked {
		t.Fatal("password must not be exposed")
	}

	status, body = srv.do(nethttp.MethodGet, "/api/auth/profile", token, nil)
	if status != nethttp.StatusOK || body["data"].(map[string]any)["email"] != "student@example.com" {
		t.Fatalf("auth profile: %d %v", status, body)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	if status, _ := srv.do(nethttp.MethodGet, "/health/live", "", nil); status != nethttp.StatusOK {
		t.Fatalf("live: %d", status)
	}
	status, body := srv.do(nethttp.MethodGet, "/health/ready", "", nil)
	if status != nethttp.StatusOK || body["status"] != "ready" {
		t.Fatalf("ready: %d %v", status, body)
	}
	if status, _ := srv.do(nethttp.MethodGet, "/metrics", "", nil); status != nethttp.StatusOK {
		t.Fatalf("metrics: %d", status)
	}
}

func TestPaddedCompanyPathListsPostedThread(t *testing.T) {
	srv := newTestServer(t)
	token, _ := srv.register("pad@example.com", "Pad")

	status, body := srv.do(nethttp.MethodPost, "/api/discussions/%20Google%20", token, map[string]any{"message": "hi"})
	if status != nethttp.StatusCreated {
		t.Fatalf("post: %d %v", status, body)
	}
	_, body = srv.do(nethttp.MethodGet, "/api/discussions/%20Google%20", "", nil)
	if items := dataList(t, body); len(items) != 1 || items[0]["company"] != "Google" {
		t.Fatalf("padded path thread: %v", items)
	}
}
