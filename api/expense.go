package api

import (
	"expensetracker/ledger"
	"expensetracker/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExpenseHandler 支出记录处理器
type ExpenseHandler struct {
	svc *ledger.Service
}

// NewExpenseHandler 创建支出记录处理器
func NewExpenseHandler(svc *ledger.Service) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

// ExpenseRequest 创建/更新支出请求，更新时所有字段都需提供
type ExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"99.99"`
	Description string          `json:"description" binding:"max=255" example:"午餐"`
	Date        string          `json:"date" binding:"required" example:"2025-06-15"`
	CategoryID  uint            `json:"category_id" binding:"required" example:"1"`
}

func (r ExpenseRequest) toInput() (ledger.ExpenseInput, error) {
	if err := validAmount(r.Amount); err != nil {
		return ledger.ExpenseInput{}, err
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return ledger.ExpenseInput{}, err
	}
	return ledger.ExpenseInput{
		Amount:      r.Amount,
		Description: r.Description,
		Date:        date,
		CategoryID:  r.CategoryID,
	}, nil
}

func bindExpense(c *gin.Context) (ledger.ExpenseInput, bool) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return ledger.ExpenseInput{}, false
	}
	in, err := req.toInput()
	if err != nil {
		BadRequest(c, err.Error())
		return ledger.ExpenseInput{}, false
	}
	return in, true
}

// Create 创建支出
// @Summary 创建支出
// @Description 当月支出合计不得超过当月收入，当月无收入时拒绝
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExpenseRequest true "支出信息"
// @Success 201 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "类别不存在"
// @Failure 409 {object} Response "超出当月收入"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	in, ok := bindExpense(c)
	if !ok {
		return
	}
	expense, err := h.svc.CreateExpense(c.Request.Context(), middleware.GetCurrentUserID(c), in)
	if err != nil {
		respondLedgerError(c, err, "创建支出失败")
		return
	}
	Created(c, "创建成功", expense)
}

// List 支出列表
// @Summary 支出列表
// @Description 分页查询当前用户的支出，可按年月与类别筛选，按日期倒序
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param year query int false "年"
// @Param month query int false "月 (1-12)"
// @Param category_id query int false "类别ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} Response{data=PageResponse{list=[]models.Expense}} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	f, ok := bindListFilter(c)
	if !ok {
		return
	}
	page, err := h.svc.ListExpenses(c.Request.Context(), middleware.GetCurrentUserID(c), f)
	if err != nil {
		respondLedgerError(c, err, "查询失败")
		return
	}
	Success(c, page)
}

// Get 支出详情
// @Summary 支出详情
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Success 200 {object} Response{data=models.Expense} "获取成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	expense, err := h.svc.GetExpense(c.Request.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		respondLedgerError(c, err, "查询失败")
		return
	}
	Success(c, expense)
}

// Update 修改支出
// @Summary 修改支出
// @Description 跨月修改时按目标月份完整金额校验；同月修改按差额校验
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Param request body ExpenseRequest true "支出信息"
// @Success 200 {object} Response{data=models.Expense} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "记录或类别不存在"
// @Failure 409 {object} Response "超出当月收入"
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := bindExpense(c)
	if !ok {
		return
	}
	expense, err := h.svc.UpdateExpense(c.Request.Context(), middleware.GetCurrentUserID(c), id, in)
	if err != nil {
		respondLedgerError(c, err, "更新支出失败")
		return
	}
	SuccessWithMessage(c, "更新成功", expense)
}

// Delete 删除支出
// @Summary 删除支出
// @Tags 支出
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Success 204 "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteExpense(c.Request.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		respondLedgerError(c, err, "删除支出失败")
		return
	}
	NoContent(c)
}
