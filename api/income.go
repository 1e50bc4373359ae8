package api

import (
	"expensetracker/ledger"
	"expensetracker/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// IncomeHandler 收入记录处理器
type IncomeHandler struct {
	svc *ledger.Service
}

// NewIncomeHandler 创建收入记录处理器
func NewIncomeHandler(svc *ledger.Service) *IncomeHandler {
	return &IncomeHandler{svc: svc}
}

// IncomeRequest 创建/更新收入请求
type IncomeRequest struct {
	Amount           decimal.Decimal `json:"amount" swaggertype:"string" example:"8000"`
	Date             string          `json:"date" binding:"required" example:"2025-06-01"`
	IncomeCategoryID uint            `json:"income_category_id" binding:"required" example:"1"`
}

func bindIncome(c *gin.Context) (ledger.IncomeInput, bool) {
	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return ledger.IncomeInput{}, false
	}
	if err := validAmount(req.Amount); err != nil {
		BadRequest(c, err.Error())
		return ledger.IncomeInput{}, false
	}
	date, err := parseDate(req.Date)
	if err != nil {
		BadRequest(c, err.Error())
		return ledger.IncomeInput{}, false
	}
	return ledger.IncomeInput{
		Amount:           req.Amount,
		Date:             date,
		IncomeCategoryID: req.IncomeCategoryID,
	}, true
}

// Create 创建收入
// @Summary 创建收入
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IncomeRequest true "收入信息"
// @Success 201 {object} Response{data=models.Income} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "收入类别不存在"
// @Router /api/v1/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	in, ok := bindIncome(c)
	if !ok {
		return
	}
	income, err := h.svc.CreateIncome(c.Request.Context(), middleware.GetCurrentUserID(c), in)
	if err != nil {
		respondLedgerError(c, err, "创建收入失败")
		return
	}
	Created(c, "创建成功", income)
}

// List 收入列表
// @Summary 收入列表
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param year query int false "年"
// @Param month query int false "月 (1-12)"
// @Param category_id query int false "收入类别ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} Response{data=PageResponse{list=[]models.Income}} "获取成功"
// @Router /api/v1/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	f, ok := bindListFilter(c)
	if !ok {
		return
	}
	page, err := h.svc.ListIncomes(c.Request.Context(), middleware.GetCurrentUserID(c), f)
	if err != nil {
		respondLedgerError(c, err, "查询失败")
		return
	}
	Success(c, page)
}

// Get 收入详情
// @Summary 收入详情
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入ID"
// @Success 200 {object} Response{data=models.Income} "获取成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id} [get]
func (h *IncomeHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	income, err := h.svc.GetIncome(c.Request.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		respondLedgerError(c, err, "查询失败")
		return
	}
	Success(c, income)
}

// Update 修改收入
// @Summary 修改收入
// @Description 收入减少或移出原月份时，原月份的预算与支出合计仍不得超过剩余收入
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入ID"
// @Param request body IncomeRequest true "收入信息"
// @Success 200 {object} Response{data=models.Income} "更新成功"
// @Failure 404 {object} Response "记录或类别不存在"
// @Failure 409 {object} Response "原月份预算或支出将超出收入"
// @Router /api/v1/incomes/{id} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := bindIncome(c)
	if !ok {
		return
	}
	income, err := h.svc.UpdateIncome(c.Request.Context(), middleware.GetCurrentUserID(c), id, in)
	if err != nil {
		respondLedgerError(c, err, "更新收入失败")
		return
	}
	SuccessWithMessage(c, "更新成功", income)
}

// Delete 删除收入
// @Summary 删除收入
// @Tags 收入
// @Security BearerAuth
// @Param id path int true "收入ID"
// @Success 204 "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Failure 409 {object} Response "预算或支出将超出收入"
// @Router /api/v1/incomes/{id} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteIncome(c.Request.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		respondLedgerError(c, err, "删除收入失败")
		return
	}
	NoContent(c)
}
