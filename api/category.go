package api

import (
	"expensetracker/ledger"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 消费类别与收入类别处理器
type CategoryHandler struct {
	svc *ledger.Service
}

// NewCategoryHandler 创建类别处理器
func NewCategoryHandler(svc *ledger.Service) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// CategoryRequest 创建/更新类别请求；更新时未提供的字段保持不变
type CategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=50" example:"餐饮"`
	Sort  *int    `json:"sort" example:"10"`
	Color *string `json:"color" binding:"omitempty,max=20" example:"#ef4444"`
}

func (r CategoryRequest) toInput() ledger.CategoryInput {
	return ledger.CategoryInput{Name: r.Name, Sort: r.Sort, Color: r.Color}
}

func bindCategory(c *gin.Context) (ledger.CategoryInput, bool) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return ledger.CategoryInput{}, false
	}
	return req.toInput(), true
}

// List 消费类别列表
// @Summary 消费类别列表
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		respondLedgerError(c, err, "获取类别失败")
		return
	}
	Success(c, list)
}

// Get 消费类别详情
// @Summary 消费类别详情
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Success 200 {object} Response{data=models.Category} "获取成功"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cat, err := h.svc.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondLedgerError(c, err, "获取类别失败")
		return
	}
	Success(c, cat)
}

// Create 新增消费类别
// @Summary 新增消费类别
// @Tags 后台-类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryRequest true "类别信息"
// @Success 201 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} Response "名称为空"
// @Failure 409 {object} Response "名称已存在"
// @Router /api/v1/admin/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	in, ok := bindCategory(c)
	if !ok {
		return
	}
	cat, err := h.svc.CreateCategory(c.Request.Context(), in)
	if err != nil {
		respondLedgerError(c, err, "创建类别失败")
		return
	}
	Created(c, "创建成功", cat)
}

// Update 修改消费类别
// @Summary 修改消费类别
// @Tags 后台-类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Param request body CategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "更新成功"
// @Failure 404 {object} Response "类别不存在"
// @Failure 409 {object} Response "名称已存在"
// @Router /api/v1/admin/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := bindCategory(c)
	if !ok {
		return
	}
	cat, err := h.svc.UpdateCategory(c.Request.Context(), id, in)
	if err != nil {
		respondLedgerError(c, err, "更新类别失败")
		return
	}
	SuccessWithMessage(c, "更新成功", cat)
}

// Delete 删除消费类别
// @Summary 删除消费类别
// @Description 仍有支出或预算引用的类别不能删除
// @Tags 后台-类别
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Success 204 "删除成功"
// @Failure 404 {object} Response "类别不存在"
// @Failure 409 {object} Response "类别仍被引用"
// @Router /api/v1/admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCategory(c.Request.Context(), id); err != nil {
		respondLedgerError(c, err, "删除类别失败")
		return
	}
	NoContent(c)
}

// ListIncome 收入类别列表
// @Summary 收入类别列表
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.IncomeCategory} "获取成功"
// @Router /api/v1/income-categories [get]
func (h *CategoryHandler) ListIncome(c *gin.Context) {
	list, err := h.svc.ListIncomeCategories(c.Request.Context())
	if err != nil {
		respondLedgerError(c, err, "获取收入类别失败")
		return
	}
	Success(c, list)
}

// GetIncome 收入类别详情
// @Summary 收入类别详情
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入类别ID"
// @Success 200 {object} Response{data=models.IncomeCategory} "获取成功"
// @Failure 404 {object} Response "收入类别不存在"
// @Router /api/v1/income-categories/{id} [get]
func (h *CategoryHandler) GetIncome(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cat, err := h.svc.GetIncomeCategory(c.Request.Context(), id)
	if err != nil {
		respondLedgerError(c, err, "获取收入类别失败")
		return
	}
	Success(c, cat)
}

// CreateIncome 新增收入类别
// @Summary 新增收入类别
// @Tags 后台-类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryRequest true "类别信息"
// @Success 201 {object} Response{data=models.IncomeCategory} "创建成功"
// @Failure 409 {object} Response "名称已存在"
// @Router /api/v1/admin/income-categories [post]
func (h *CategoryHandler) CreateIncome(c *gin.Context) {
	in, ok := bindCategory(c)
	if !ok {
		return
	}
	cat, err := h.svc.CreateIncomeCategory(c.Request.Context(), in)
	if err != nil {
		respondLedgerError(c, err, "创建收入类别失败")
		return
	}
	Created(c, "创建成功", cat)
}

// UpdateIncome 修改收入类别
// @Summary 修改收入类别
// @Tags 后台-类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入类别ID"
// @Param request body CategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.IncomeCategory} "更新成功"
// @Failure 404 {object} Response "收入类别不存在"
// @Router /api/v1/admin/income-categories/{id} [put]
func (h *CategoryHandler) UpdateIncome(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := bindCategory(c)
	if !ok {
		return
	}
	cat, err := h.svc.UpdateIncomeCategory(c.Request.Context(), id, in)
	if err != nil {
		respondLedgerError(c, err, "更新收入类别失败")
		return
	}
	SuccessWithMessage(c, "更新成功", cat)
}

// DeleteIncome 删除收入类别
// @Summary 删除收入类别
// @Tags 后台-类别
// @Security BearerAuth
// @Param id path int true "收入类别ID"
// @Success 204 "删除成功"
// @Failure 409 {object} Response "收入类别仍被引用"
// @Router /api/v1/admin/income-categories/{id} [delete]
func (h *CategoryHandler) DeleteIncome(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteIncomeCategory(c.Request.Context(), id); err != nil {
		respondLedgerError(c, err, "删除收入类别失败")
		return
	}
	NoContent(c)
}
