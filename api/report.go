package api

import (
	"errors"
	"log"

	"expensetracker/config"
	"expensetracker/database"
	"expensetracker/ledger"
	"expensetracker/middleware"
	"expensetracker/models"
	"expensetracker/service"

	"github.com/gin-gonic/gin"
)

// TestEmailRequest 测试邮件请求
type TestEmailRequest struct {
	Email string `json:"email" binding:"required,email" example:"admin@example.com"`
}

// ReportHandler 月度报告处理器
type ReportHandler struct {
	svc          *ledger.Service
	emailService *service.EmailService
}

// NewReportHandler 创建月度报告处理器
func NewReportHandler(svc *ledger.Service, cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		svc:          svc,
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// SendMonthlyEmail 发送月度报告邮件
// @Summary 发送月度报告邮件
// @Description 将当月收支汇总发送到当前用户的邮箱。不传年月时取当前月份
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param year query int false "年"
// @Param month query int false "月 (1-12)"
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "邮件服务未启用或未绑定邮箱"
// @Failure 500 {object} Response "发送失败"
// @Router /api/v1/reports/monthly/email [post]
func (h *ReportHandler) SendMonthlyEmail(c *gin.Context) {
	if !h.emailService.Enabled() {
		BadRequest(c, "邮件服务未启用")
		return
	}
	p, err := queryPeriodOrCurrent(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetCurrentUserID(c)
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}
	if user.Email == "" {
		BadRequest(c, "请先绑定邮箱")
		return
	}

	summary, err := h.svc.MonthlySummary(c.Request.Context(), userID, p)
	if err != nil {
		respondLedgerError(c, err, "统计失败")
		return
	}
	if err := h.emailService.SendMonthlyReport(user.Email, user.Username, summary); err != nil {
		if errors.Is(err, service.ErrEmailDisabled) {
			BadRequest(c, "邮件服务未启用")
			return
		}
		log.Printf("[%s] 发送月度报告失败: %v", middleware.GetRequestID(c), err)
		InternalError(c, SafeErrorMessage(err, "发送邮件失败"))
		return
	}
	SuccessWithMessage(c, "发送成功", gin.H{"email": user.Email, "period": summary.Period})
}

// SendTestEmail 发送测试邮件，用于检查 SMTP 配置
// @Summary 发送测试邮件
// @Tags 后台-邮件
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TestEmailRequest true "请求参数"
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "参数错误或邮件未启用"
// @Failure 500 {object} Response "发送失败"
// @Router /api/v1/admin/email/test [post]
func (h *ReportHandler) SendTestEmail(c *gin.Context) {
	var req TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if err := h.emailService.SendTestEmail(req.Email); err != nil {
		if errors.Is(err, service.ErrEmailDisabled) {
			BadRequest(c, "邮件服务未启用")
			return
		}
		log.Printf("[%s] 发送测试邮件失败: %v", middleware.GetRequestID(c), err)
		InternalError(c, SafeErrorMessage(err, "发送邮件失败"))
		return
	}
	SuccessWithMessage(c, "发送成功", gin.H{"email": req.Email})
}
