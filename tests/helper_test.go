package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"secadmin/internal/admin/handler"
	"secadmin/internal/admin/matrix"
	"secadmin/internal/admin/registry"
	"secadmin/internal/admin/router"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func SetupServer() *echo.Echo {
	e := echo.New()
	return e
}

// NewTestStack wires the real engine and routes over the given mocks.
func NewTestStack(t *testing.T, dir *MockDirectorySource, permRepo *MockPermissionRepository, estRepo *MockEstablishmentRepository) (*echo.Echo, *matrix.Engine) {
	t.Helper()

	reg, err := registry.New()
	if err != nil {
		t.Fatalf("load page catalog: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := matrix.NewEngine(dir, reg, permRepo, time.Second, logger)
	h := handler.NewAdminHandler(engine, estRepo, dir)

	e := SetupServer()
	router.RegisterRoutes(e, h, testSecret)
	return e, engine
}

// SignToken issues an HS256 token the auth middleware accepts.
func SignToken(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}

func PerformRequest(e *echo.Echo, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var bodyReader *strings.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		bodyReader = strings.NewReader(string(b))
	} else {
		bodyReader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// PerformMultipart submits a multipart form, optionally with a logo file.
func PerformMultipart(t *testing.T, e *echo.Echo, method, path string, fields map[string]string, logo []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if logo != nil {
		fw, err := w.CreateFormFile("logo", "logo.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := io.Copy(fw, bytes.NewReader(logo)); err != nil {
			t.Fatalf("write logo: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
