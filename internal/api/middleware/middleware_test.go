package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"mycv/internal/auth"
)

type stubValidator struct{}

func (stubValidator) ValidateToken(token string) (*auth.TokenClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	claims := &auth.TokenClaims{}
	claims.Subject = "user-42"
	return claims, nil
}

func newLoggedRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	router := gin.New()
	router.Use(CorrelationIDMiddleware(), SlogLoggerMiddleware(logger))
	protected := router.Group("/v1/resumes", AuthMiddleware(stubValidator{}))
	protected.GET("/:id/print", func(c *gin.Context) {
		SetTemplate(c, "t7")
		c.String(http.StatusOK, "ok")
	})
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})
	return router
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", lines[len(lines)-1], err)
	}
	return entry
}

func TestCorrelationIDMiddleware(t *testing.T) {
	cases := []struct {
		name   string
		header string
		keep   bool
	}{
		{"generated when missing", "", false},
		{"caller token kept", "export-7f3a.1", true},
		{"spaces rejected", "two words", false},
		{"markup rejected", "<script>", false},
		{"oversized rejected", strings.Repeat("a", maxCorrelationIDLen+1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newLoggedRouter(&bytes.Buffer{})
			req := httptest.NewRequest(http.MethodGet, "/boom", nil)
			if tc.header != "" {
				req.Header.Set(CorrelationHeader, tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			got := w.Header().Get(CorrelationHeader)
			if got == "" {
				t.Fatalf("response must carry a correlation id")
			}
			if tc.keep != (got == tc.header) {
				t.Fatalf("header %q produced %q", tc.header, got)
			}
		})
	}
}

func TestSlogLoggerMiddlewareAddsRequestContext(t *testing.T) {
	buf := &bytes.Buffer{}
	router := newLoggedRouter(buf)

	req := httptest.NewRequest(http.MethodGet, "/v1/resumes/12/print", nil)
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set(CorrelationHeader, "cid-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	entry := lastLogLine(t, buf)
	want := map[string]any{
		"msg":            "request completed",
		"level":          "INFO",
		"correlation_id": "cid-1",
		"path":           "/v1/resumes/:id/print",
		"user_id":        "user-42",
		"resume_id":      "12",
		"template":       "t7",
	}
	for key, value := range want {
		if entry[key] != value {
			t.Fatalf("%s: expected %v, got %v (entry %v)", key, value, entry[key], entry)
		}
	}
}

func TestSlogLoggerMiddlewareLevelFollowsStatus(t *testing.T) {
	buf := &bytes.Buffer{}
	router := newLoggedRouter(buf)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	if entry := lastLogLine(t, buf); entry["level"] != "ERROR" {
		t.Fatalf("5xx must log at error level, got %v", entry["level"])
	}

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/resumes/3/print", nil))
	entry := lastLogLine(t, buf)
	if entry["level"] != "WARN" || entry["status"] != float64(http.StatusUnauthorized) {
		t.Fatalf("unexpected entry for rejected request %v", entry)
	}
	if _, ok := entry["user_id"]; ok {
		t.Fatalf("anonymous requests must not log a user id")
	}
}
