package api

import (
	"expensetracker/ledger"
	"expensetracker/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BudgetHandler 月度预算处理器
type BudgetHandler struct {
	svc *ledger.Service
}

// NewBudgetHandler 创建月度预算处理器
func NewBudgetHandler(svc *ledger.Service) *BudgetHandler {
	return &BudgetHandler{svc: svc}
}

// BudgetRequest 创建/更新预算请求
type BudgetRequest struct {
	CategoryID uint            `json:"category_id" binding:"required" example:"1"`
	Year       int             `json:"year" binding:"required" example:"2025"`
	Month      int             `json:"month" binding:"required,min=1,max=12" example:"6"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"string" example:"1500"`
}

func bindBudget(c *gin.Context) (ledger.BudgetInput, bool) {
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return ledger.BudgetInput{}, false
	}
	p := ledger.NewPeriod(req.Year, req.Month)
	if !p.Valid() {
		BadRequest(c, errInvalidPeriod.Error())
		return ledger.BudgetInput{}, false
	}
	if err := validAmount(req.Amount); err != nil {
		BadRequest(c, err.Error())
		return ledger.BudgetInput{}, false
	}
	return ledger.BudgetInput{CategoryID: req.CategoryID, Period: p, Amount: req.Amount}, true
}

// Create 创建预算
// @Summary 创建月度预算
// @Description 同一类别每月一条；当月预算合计不得超过当月收入
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BudgetRequest true "预算信息"
// @Success 201 {object} Response{data=models.MonthlyBudget} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "类别不存在"
// @Failure 409 {object} Response "超出当月收入或重复设置"
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	in, ok := bindBudget(c)
	if !ok {
		return
	}
	budget, err := h.svc.CreateBudget(c.Request.Context(), middleware.GetCurrentUserID(c), in)
	if err != nil {
		respondLedgerError(c, err, "创建预算失败")
		return
	}
	Created(c, "创建成功", budget)
}

// List 预算列表
// @Summary 预算列表
// @Description 不传年月时返回全部预算
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param year query int false "年"
// @Param month query int false "月 (1-12)"
// @Success 200 {object} Response{data=[]models.MonthlyBudget} "获取成功"
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	p, err := queryPeriod(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	budgets, err := h.svc.ListBudgets(c.Request.Context(), middleware.GetCurrentUserID(c), p)
	if err != nil {
		respondLedgerError(c, err, "查询失败")
		return
	}
	Success(c, budgets)
}

// Get 预算详情
// @Summary 预算详情
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Success 200 {object} Response{data=models.MonthlyBudget} "获取成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/budgets/{id} [get]
func (h *BudgetHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	budget, err := h.svc.GetBudget(c.Request.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		respondLedgerError(c, err, "查询失败")
		return
	}
	Success(c, budget)
}

// Update 修改预算
// @Summary 修改月度预算
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Param request body BudgetRequest true "预算信息"
// @Success 200 {object} Response{data=models.MonthlyBudget} "更新成功"
// @Failure 404 {object} Response "记录或类别不存在"
// @Failure 409 {object} Response "超出当月收入或重复设置"
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := bindBudget(c)
	if !ok {
		return
	}
	budget, err := h.svc.UpdateBudget(c.Request.Context(), middleware.GetCurrentUserID(c), id, in)
	if err != nil {
		respondLedgerError(c, err, "更新预算失败")
		return
	}
	SuccessWithMessage(c, "更新成功", budget)
}

// Delete 删除预算
// @Summary 删除月度预算
// @Tags 预算
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Success 204 "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteBudget(c.Request.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		respondLedgerError(c, err, "删除预算失败")
		return
	}
	NoContent(c)
}
