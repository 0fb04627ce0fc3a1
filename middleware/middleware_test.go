package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/consultorio-backend/models"
	"github.com/lizet96/consultorio-backend/services"
	"github.com/rs/zerolog"
)

type stubVerifier struct {
	tokens map[string]models.Identity
	err    error
}

func (s stubVerifier) Verify(_ context.Context, token string) (models.Identity, error) {
	if s.err != nil {
		return models.Identity{}, s.err
	}
	id, ok := s.tokens[token]
	if !ok {
		return models.Identity{}, services.ErrUnauthenticated
	}
	return id, nil
}

func newAuthApp(v TokenVerifier) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": false, "message": "Internal server error"})
		},
	})
	app.Get("/privado", Authenticate(v), WithCaller(func(c *fiber.Ctx, caller models.Identity) error {
		return c.JSON(fiber.Map{"user_id": caller.UserID})
	}))
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestAuthenticate(t *testing.T) {
	app := newAuthApp(stubVerifier{tokens: map[string]models.Identity{"bueno": {UserID: 9, TokenID: "jti"}}})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer bueno", http.StatusOK},
		{"lowercase scheme", "bearer bueno", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"no scheme", "bueno", http.StatusUnauthorized},
		{"basic scheme", "Basic bueno", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer malo", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/privado", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.StatusCode)
			}
			body := decodeBody(t, resp)
			if tt.status == http.StatusOK {
				if body["user_id"] != float64(9) {
					t.Errorf("expected user_id 9, got %v", body["user_id"])
				}
				return
			}
			if body["status"] != false || body["message"] != "Unauthenticated." {
				t.Errorf("unexpected body: %v", body)
			}
		})
	}
}

func TestAuthenticate_StorageFailure(t *testing.T) {
	app := newAuthApp(stubVerifier{err: errors.New("db down")})
	req := httptest.NewRequest(http.MethodGet, "/privado", nil)
	req.Header.Set("Authorization", "Bearer cualquiera")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
}

func TestWithCaller_WithoutAuthenticate(t *testing.T) {
	app := fiber.New()
	called := false
	app.Get("/", WithCaller(func(c *fiber.Ctx, _ models.Identity) error {
		called = true
		return nil
	}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized || called {
		t.Errorf("expected 401 without calling handler, got %d (called=%v)", resp.StatusCode, called)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).SendString("boom")
		},
	})
	app.Use(RequestLogger(logger))
	app.Post("/auth/login", func(c *fiber.Ctx) error {
		zerolog.Ctx(c.UserContext()).Info().Msg("dentro del handler")
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/falla", func(c *fiber.Ctx) error {
		return errors.New("falla")
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.com","password":"secreto123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	rid := resp.Header.Get("X-Request-ID")
	if rid == "" {
		t.Fatal("expected X-Request-ID header")
	}

	out := buf.String()
	if strings.Contains(out, "secreto123") {
		t.Error("password leaked into the log")
	}
	if !strings.Contains(out, `"request_id":"`+rid+`"`) {
		t.Errorf("expected request_id in log, got %s", out)
	}
	if !strings.Contains(out, "dentro del handler") {
		t.Error("expected handler log line to use the request logger")
	}

	buf.Reset()
	req = httptest.NewRequest(http.MethodGet, "/falla", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") != "abc-123" {
		t.Error("expected incoming request id to be kept")
	}
	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if line["level"] != "error" || line["status"] != float64(500) {
		t.Errorf("unexpected log line: %v", line)
	}
}

func TestFilterSensitiveData(t *testing.T) {
	got := filterSensitiveData(`{"email":"a@b.com","password":"x","token":"y"}`)
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(got), &data); err != nil {
		t.Fatalf("filtered body is not JSON: %v", err)
	}
	if data["password"] != filteredValue || data["token"] != filteredValue {
		t.Errorf("sensitive fields not filtered: %v", data)
	}
	if data["email"] != "a@b.com" {
		t.Errorf("email should be kept: %v", data)
	}

	long := strings.Repeat("a", 2000)
	if got := filterSensitiveData(long); len(got) != maxLoggedBody+len(truncatedSuffix) {
		t.Errorf("expected truncated body, got %d bytes", len(got))
	}
}

func TestBodySizeLimit(t *testing.T) {
	app := fiber.New()
	app.Use(BodySizeLimit(10))
	app.Post("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("corto")))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	resp, _ = app.Test(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 11))))
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"status":false`) {
		t.Errorf("unexpected body %s", body)
	}
}

func TestSecurityHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(SecurityHeaders())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	} {
		if got := resp.Header.Get(header); got != want {
			t.Errorf("header %s: got %q, want %q", header, got, want)
		}
	}
}
