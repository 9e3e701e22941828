package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"mycv/internal/api/middleware"
	"mycv/internal/tasks"
)

// WsHandler 负责处理 WebSocket 鉴权与消息转发。
type WsHandler struct {
	redisClient    *redis.Client
	validator      middleware.TokenValidator
	logger         *slog.Logger
	upgrader       websocket.Upgrader
	allowedOrigins []string
}

// NewWsHandler 构造 WebSocket 处理器。
func NewWsHandler(redisClient *redis.Client, validator middleware.TokenValidator, logger *slog.Logger, allowedOrigins []string) *WsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &WsHandler{
		redisClient:    redisClient,
		validator:      validator,
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(r.Header.Get("Origin"), r.Host, h.allowedOrigins)
		},
	}
	return h
}

// originAllowed 在未配置白名单时只接受同源页面；没有 Origin 的非浏览器客户端放行。
func originAllowed(origin, host string, allowed []string) bool {
	if origin == "" {
		return true
	}
	if len(allowed) == 0 {
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, host)
	}
	for _, candidate := range allowed {
		if strings.EqualFold(origin, candidate) {
			return true
		}
	}
	return false
}

const (
	wsAuthTimeout  = 10 * time.Second
	wsReadLimit    = 4096
	wsPingInterval = 30 * time.Second
)

type wsAuthMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// wsReadyMessage 在鉴权成功后发送一次，前端收到后才发起导出，避免漏掉通知。
var wsReadyMessage = []byte(`{"type":"ready"}`)

// wsAuthError 携带关闭帧的提示文本。
type wsAuthError struct {
	reason string
	err    error
}

func (e *wsAuthError) Error() string { return e.reason + ": " + e.err.Error() }

func (e *wsAuthError) Unwrap() error { return e.err }

// authenticate 解析首条消息 {"type":"auth","token":...} 并返回令牌中的用户 ID。
func authenticate(validator middleware.TokenValidator, message []byte) (string, error) {
	var authMsg wsAuthMessage
	if err := json.Unmarshal(message, &authMsg); err != nil {
		return "", &wsAuthError{reason: "invalid auth payload", err: err}
	}
	if authMsg.Type != "auth" || authMsg.Token == "" {
		return "", &wsAuthError{reason: "auth required", err: errors.New("first message must be an auth message")}
	}
	claims, err := validator.ValidateToken(authMsg.Token)
	if err != nil {
		return "", &wsAuthError{reason: "unauthorized", err: err}
	}
	if claims.Subject == "" {
		return "", &wsAuthError{reason: "unauthorized", err: errors.New("token has no subject")}
	}
	return claims.Subject, nil
}

// exportNotification 是转发前校验用的最小字段集。
type exportNotification struct {
	Status   string `json:"status"`
	ResumeID uint   `json:"resume_id"`
}

// forwardable 只放行带 status 与 resume_id 的导出通知，其他发布到频道的内容丢弃。
func forwardable(payload string) bool {
	var n exportNotification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return false
	}
	return n.Status != "" && n.ResumeID != 0
}

// HandleConnection 负责升级连接并启动读写循环。
func (h *WsHandler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("upgrade websocket failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsAuthTimeout))

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	baseLog := h.logger.With(
		slog.String("client_ip", c.ClientIP()),
	)

	userIDCh := make(chan string, 1)
	errCh := make(chan error, 1)

	go h.readLoop(ctx, conn, userIDCh, errCh, cancel, baseLog)

	var userID string
	select {
	case <-ctx.Done():
		return
	case err := <-errCh:
		if err != nil {
			baseLog.Warn("websocket authentication failed", slog.Any("error", err))
		}
		return
	case userID = <-userIDCh:
	}

	userLog := baseLog.With(slog.String("user_id", userID))
	if err := conn.WriteMessage(websocket.TextMessage, wsReadyMessage); err != nil {
		userLog.Warn("write ready message failed", slog.Any("error", err))
		return
	}
	go h.subscribeLoop(ctx, conn, userID, errCh, cancel, userLog)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			userLog.Info("websocket connection closed", slog.Any("error", err))
		} else {
			userLog.Info("websocket connection closed")
		}
	}
}

func (h *WsHandler) readLoop(
	ctx context.Context,
	conn *websocket.Conn,
	userIDCh chan<- string,
	errCh chan<- error,
	cancel context.CancelFunc,
	log *slog.Logger,
) {
	authenticated := false

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			writeClose(conn, websocket.CloseAbnormalClosure, "read error")
			reportErr(errCh, fmt.Errorf("read message: %w", err))
			cancel()
			return
		}

		if !authenticated {
			userID, err := authenticate(h.validator, message)
			if err != nil {
				reason := "unauthorized"
				var authErr *wsAuthError
				if errors.As(err, &authErr) {
					reason = authErr.reason
				}
				writeClose(conn, websocket.ClosePolicyViolation, reason)
				reportErr(errCh, err)
				cancel()
				return
			}

			_ = conn.SetReadDeadline(time.Time{})
			authenticated = true
			userIDCh <- userID
			log.Info("websocket authenticated", slog.String("user_id", userID))
			continue
		}

		// 认证后客户端只会发送心跳，读取仅用于感知断开。
	}
}

// reportErr 只保留第一个错误，后续退出的循环不会阻塞。
func reportErr(errCh chan<- error, err error) {
	select {
	case errCh <- err:
	default:
	}
}

func writeClose(conn *websocket.Conn, code int, text string) {
	deadline := time.Now().Add(5 * time.Second)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), deadline)
}

func (h *WsHandler) subscribeLoop(
	ctx context.Context,
	conn *websocket.Conn,
	userID string,
	errCh chan<- error,
	cancel context.CancelFunc,
	log *slog.Logger,
) {
	channel := tasks.NotifyChannel(userID)
	pubsub := h.redisClient.Subscribe(ctx, channel)
	defer pubsub.Close()

	log.Info("subscribed to redis channel", slog.String("channel", channel))

	ch := pubsub.Channel()
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				reportErr(errCh, fmt.Errorf("pubsub channel closed"))
				cancel()
				return
			}

			if !forwardable(msg.Payload) {
				log.Warn("drop malformed notification", slog.String("channel", channel))
				continue
			}
			log.Info("forwarding message to client", slog.String("channel", channel))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				reportErr(errCh, fmt.Errorf("write message: %w", err))
				cancel()
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(5 * time.Second)
			if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), deadline); err != nil {
				reportErr(errCh, fmt.Errorf("write ping: %w", err))
				cancel()
				return
			}
		}
	}
}
