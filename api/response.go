package api

import (
	"net/http"

	"pocketledger/ledger"

	"github.com/gin-gonic/gin"
)

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	SuccessWithMessage(c, "success", data)
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应，kind 为错误类别
func Error(c *gin.Context, code int, kind, message string) {
	c.JSON(code, Response{
		Code:    code,
		Success: false,
		Error:   kind,
		Message: message,
	})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, string(ledger.KindInvalidInput), message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, string(ledger.KindStoreFailure), message)
}

// statusOf 错误类别对应的 HTTP 状态码
func statusOf(kind ledger.Kind) int {
	switch kind {
	case ledger.KindInvalidInput:
		return http.StatusBadRequest
	case ledger.KindNotFound:
		return http.StatusNotFound
	case ledger.KindInsufficientFunds, ledger.KindNoBalanceRecord:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Fail 按错误类别返回响应，存储错误只在非 release 模式下暴露详情
func Fail(c *gin.Context, err error, fallback string) {
	kind := ledger.KindOf(err)
	message := ledger.MessageOf(err)
	if kind == ledger.KindStoreFailure {
		message = SafeErrorMessage(err, fallback)
	}
	Error(c, statusOf(kind), string(kind), message)
}
