package api

import (
	"expensetracker/ledger"

	"github.com/gin-gonic/gin"
)

// UserHandler 后台用户管理处理器
type UserHandler struct {
	svc *ledger.Service
}

// NewUserHandler 创建用户管理处理器
func NewUserHandler(svc *ledger.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// AssignRoleRequest 修改角色请求
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required" example:"admin"`
}

// List 用户列表
// @Summary 用户列表
// @Tags 后台-用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.User} "获取成功"
// @Failure 403 {object} Response "无权限"
// @Router /api/v1/admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		respondLedgerError(c, err, "获取用户列表失败")
		return
	}
	Success(c, users)
}

// AssignRole 修改用户角色
// @Summary 修改用户角色
// @Description 角色只能为 user 或 admin，超级管理员的角色不可修改
// @Tags 后台-用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body AssignRoleRequest true "角色"
// @Success 200 {object} Response{data=models.User} "修改成功"
// @Failure 400 {object} Response "角色不合法"
// @Failure 404 {object} Response "用户不存在"
// @Failure 409 {object} Response "超级管理员不可修改"
// @Router /api/v1/admin/users/{id}/role [put]
func (h *UserHandler) AssignRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	user, err := h.svc.AssignRole(c.Request.Context(), id, req.Role)
	if err != nil {
		respondLedgerError(c, err, "修改角色失败")
		return
	}
	SuccessWithMessage(c, "修改成功", user)
}
