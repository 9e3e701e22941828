package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mycv/internal/errcode"
)

// errorResponse 是所有错误响应的 JSON 结构。Code 只在前端需要分支处理时出现。
type errorResponse struct {
	Error string       `json:"error"`
	Code  errcode.Code `json:"code,omitempty"`
}

// Error 中止请求并写入 {"error": msg}。msg 同时挂到 c.Errors，访问日志会带上它。
func Error(c *gin.Context, status int, msg string) {
	abortWith(c, status, errorResponse{Error: msg})
}

func abortWith(c *gin.Context, status int, body errorResponse) {
	_ = c.Error(errors.New(body.Error))
	c.AbortWithStatusJSON(status, body)
}

func AbortUnauthorized(c *gin.Context)      { Error(c, http.StatusUnauthorized, "unauthorized") }
func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func Forbidden(c *gin.Context, msg string)  { Error(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)   { Error(c, http.StatusConflict, msg) }
func Internal(c *gin.Context, msg string)   { Error(c, http.StatusInternalServerError, msg) }

func TooManyRequests(c *gin.Context, msg string) { Error(c, http.StatusTooManyRequests, msg) }

// InvalidDocument 返回 422，并带上 errcode.InvalidDocument，编辑器据此定位校验错误。
func InvalidDocument(c *gin.Context, err error) {
	abortWith(c, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: errcode.InvalidDocument})
}
