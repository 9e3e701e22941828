package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"mycv/internal/auth"
)

type fakeValidator struct{}

func (fakeValidator) ValidateToken(token string) (*auth.TokenClaims, error) {
	if token != "valid" {
		return nil, errors.New("signature mismatch")
	}
	claims := &auth.TokenClaims{}
	claims.Subject = "user-1"
	return claims, nil
}

func TestAuthenticate(t *testing.T) {
	cases := []struct {
		name    string
		message string
		user    string
		reason  string
	}{
		{"valid", `{"type":"auth","token":"valid"}`, "user-1", ""},
		{"not json", `hello`, "", "invalid auth payload"},
		{"wrong type", `{"type":"ping","token":"valid"}`, "", "auth required"},
		{"missing token", `{"type":"auth"}`, "", "auth required"},
		{"bad token", `{"type":"auth","token":"forged"}`, "", "unauthorized"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := authenticate(fakeValidator{}, []byte(tc.message))
			if tc.reason == "" {
				if err != nil || user != tc.user {
					t.Fatalf("expected %q, got %q err=%v", tc.user, user, err)
				}
				return
			}
			var authErr *wsAuthError
			if !errors.As(err, &authErr) || authErr.reason != tc.reason {
				t.Fatalf("expected reason %q, got %v", tc.reason, err)
			}
		})
	}
}

func TestOriginAllowed(t *testing.T) {
	cases := []struct {
		origin, host string
		allowed      []string
		want         bool
	}{
		{"", "api.mycv.guru", nil, true},
		{"https://api.mycv.guru", "api.mycv.guru", nil, true},
		{"https://evil.example", "api.mycv.guru", nil, false},
		{"https://app.mycv.guru", "api.mycv.guru", []string{"https://app.mycv.guru"}, true},
		{"https://api.mycv.guru", "api.mycv.guru", []string{"https://app.mycv.guru"}, false},
	}
	for _, tc := range cases {
		if got := originAllowed(tc.origin, tc.host, tc.allowed); got != tc.want {
			t.Fatalf("originAllowed(%q, %q, %v) = %v", tc.origin, tc.host, tc.allowed, got)
		}
	}
}

func TestForwardable(t *testing.T) {
	if !forwardable(`{"status":"completed","resume_id":3,"correlation_id":"c"}`) {
		t.Fatalf("export notifications must be forwarded")
	}
	for _, payload := range []string{`not json`, `{"status":"completed"}`, `{"resume_id":3}`, `[]`} {
		if forwardable(payload) {
			t.Fatalf("payload %s must be dropped", payload)
		}
	}
}

func newWsServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	// 未启动的 Redis：订阅在后台重连，不影响握手流程。
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	router := gin.New()
	router.GET("/v1/ws", NewWsHandler(client, fakeValidator{}, nil, nil).HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws"
}

func TestWsHandshake(t *testing.T) {
	url := newWsServer(t)

	t.Run("ready after auth", func(t *testing.T) {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer conn.Close()

		if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"auth","token":"valid"}`)); err != nil {
			t.Fatalf("write auth: %v", err)
		}
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read ready: %v", err)
		}
		if string(msg) != string(wsReadyMessage) {
			t.Fatalf("unexpected first message %s", msg)
		}
	})

	t.Run("closed on bad token", func(t *testing.T) {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer conn.Close()

		if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"auth","token":"forged"}`)); err != nil {
			t.Fatalf("write auth: %v", err)
		}
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, _, err = conn.ReadMessage()
		if !websocket.IsCloseError(err, websocket.ClosePolicyViolation) {
			t.Fatalf("expected policy violation close, got %v", err)
		}
	})

	t.Run("cross origin rejected", func(t *testing.T) {
		header := http.Header{"Origin": []string{"https://evil.example"}}
		_, resp, err := websocket.DefaultDialer.Dial(url, header)
		if err == nil {
			t.Fatalf("expected handshake to fail")
		}
		if resp == nil || resp.StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403, got %+v", resp)
		}
	})
}
