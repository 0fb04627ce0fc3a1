package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/consultorio-backend/repository"
	"github.com/lizet96/consultorio-backend/services"
	"github.com/lizet96/consultorio-backend/validation"
)

func TestToID(t *testing.T) {
	tests := []struct {
		in     interface{}
		want   int64
		wantOK bool
	}{
		{float64(3), 3, true},
		{"12", 12, true},
		{" 7 ", 7, true},
		{float64(0), 0, false},
		{float64(-2), 0, false},
		{2.5, 0, false},
		{"3abc", 0, false},
		{"NaN", 0, false},
		{true, 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := toID(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("toID(%#v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func runFail(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return fail(c, err, "Paciente no encontrado") })
	resp, terr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if terr != nil {
		t.Fatalf("app.Test: %v", terr)
	}
	defer resp.Body.Close()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, body
}

func TestFail(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", validation.Errors{"The nombre field is required."}, http.StatusBadRequest, ""},
		{"not found", repository.ErrNotFound, http.StatusNotFound, "Paciente no encontrado"},
		{"wrapped not found", errors.Join(errors.New("get"), repository.ErrNotFound), http.StatusNotFound, "Paciente no encontrado"},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, ""},
		{"storage", errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := runFail(t, tt.err)
			if status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			if body["status"] != false {
				t.Errorf("status field should be false: %v", body)
			}
			if tt.message != "" && body["message"] != tt.message {
				t.Errorf("message = %v, want %q", body["message"], tt.message)
			}
		})
	}

	_, body := runFail(t, services.ErrInvalidCredentials)
	if errs, _ := body["errors"].([]interface{}); len(errs) != 1 || errs[0] != "Unauthorized" {
		t.Errorf("expected errors [Unauthorized], got %v", body["errors"])
	}
}

func TestParseBody(t *testing.T) {
	tests := []struct {
		body    string
		wantErr bool
		keys    int
	}{
		{"", false, 0},
		{`{"nombre":"Luis"}`, false, 1},
		{`null`, true, 0},
		{`[1,2]`, true, 0},
		{`{"nombre":`, true, 0},
	}
	for _, tt := range tests {
		app := fiber.New()
		var gotErr error
		var got map[string]interface{}
		app.Post("/", func(c *fiber.Ctx) error {
			got, gotErr = parseBody(c)
			return c.SendStatus(fiber.StatusOK)
		})
		if _, err := app.Test(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))); err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if (gotErr != nil) != tt.wantErr {
			t.Errorf("parseBody(%q) error = %v, wantErr %v", tt.body, gotErr, tt.wantErr)
		}
		if !tt.wantErr && len(got) != tt.keys {
			t.Errorf("parseBody(%q) = %v", tt.body, got)
		}
	}
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "soy una tetera") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil))
	if resp.StatusCode != fiber.StatusTeapot {
		t.Errorf("expected 418, got %d", resp.StatusCode)
	}
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
}

func TestFail_InvalidReference(t *testing.T) {
	err := fmt.Errorf("insert cita: %w: citas_paciente_id_fkey", repository.ErrInvalidReference)
	status, body := runFail(t, err)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if errs, _ := body["errors"].([]interface{}); len(errs) != 1 || errs[0] != "The selected paciente id is invalid." {
		t.Errorf("unexpected errors %v", body["errors"])
	}
}
