package ledger

import (
	"context"
	"errors"
	"fmt"

	"expensetracker/models"

	"gorm.io/gorm"
)

// ListUsers 后台用户列表
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// AssignRole 修改用户角色，只能设为 user 或 admin，超级管理员的角色不可修改
func (s *Service) AssignRole(ctx context.Context, userID uint, role string) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	db := s.db.WithContext(ctx)
	var user models.User
	err := db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("User", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}
	if user.Role == models.RoleSuperAdmin {
		return nil, conflictf("Cannot change the role of a super admin.")
	}

	if err := db.Model(&user).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("assign role to user %d: %w", userID, err)
	}
	user.Role = role
	return &user, nil
}
