package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// RoleUser 普通用户：仅能维护自己的收支与预算
	RoleUser = "user"
	// RoleAdmin 管理员：可维护类别与用户角色
	RoleAdmin = "admin"
	// RoleSuperAdmin 超级管理员：角色不可被修改
	RoleSuperAdmin = "super_admin"
)

// User 用户模型
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Username  string         `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Password  string         `json:"-" gorm:"size:255;not null"`
	Email     string         `json:"email" gorm:"size:100"`
	Role      string         `json:"role" gorm:"size:20;default:user;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}

// IsAdmin 是否具有后台管理权限
func (u User) IsAdmin() bool {
	return IsAdminRole(u.Role)
}

// IsAdminRole admin 与 super_admin 均可访问后台接口
func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}
