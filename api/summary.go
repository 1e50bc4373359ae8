package api

import (
	"expensetracker/ledger"
	"expensetracker/middleware"

	"github.com/gin-gonic/gin"
)

// SummaryHandler 统计处理器
type SummaryHandler struct {
	svc *ledger.Service
}

// NewSummaryHandler 创建统计处理器
func NewSummaryHandler(svc *ledger.Service) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

// Monthly 月度汇总
// @Summary 月度汇总
// @Description 当月收入、支出、预算合计，以及结余（收入-支出）与未分配（收入-预算）。不传年月时取当前月份
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param year query int false "年"
// @Param month query int false "月 (1-12)"
// @Success 200 {object} Response{data=ledger.MonthlySummary} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/summary/monthly [get]
func (h *SummaryHandler) Monthly(c *gin.Context) {
	p, err := queryPeriodOrCurrent(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	summary, err := h.svc.MonthlySummary(c.Request.Context(), middleware.GetCurrentUserID(c), p)
	if err != nil {
		respondLedgerError(c, err, "统计失败")
		return
	}
	Success(c, summary)
}
