package api

import (
	"errors"
	"log"

	"expensetracker/ledger"
	"expensetracker/middleware"

	"github.com/gin-gonic/gin"
)

// respondLedgerError 将 ledger 返回的错误映射为 HTTP 响应：
// NotFound -> 404，Conflict -> 409，参数类错误 -> 400，其余 -> 500
func respondLedgerError(c *gin.Context, err error, fallback string) {
	requestID := middleware.GetRequestID(c)

	switch {
	case errors.Is(err, ledger.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, ledger.ErrConflict):
		log.Printf("[%s] 用户 %d 操作被拒绝: %s", requestID, middleware.GetCurrentUserID(c), err)
		Conflict(c, err.Error())
	case errors.Is(err, ledger.ErrInvalidRole), errors.Is(err, ledger.ErrEmptyName):
		BadRequest(c, err.Error())
	default:
		log.Printf("[%s] %s: %v", requestID, fallback, err)
		InternalError(c, SafeErrorMessage(err, fallback))
	}
}
