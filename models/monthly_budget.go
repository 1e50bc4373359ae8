package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyBudget 按类别的月度预算
// 同一用户、类别、年月只允许一条；删除为物理删除，保证唯一索引可以复用
type MonthlyBudget struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	UserID     uint            `json:"user_id" gorm:"uniqueIndex:uk_budget_user_category_month,priority:1;not null"`
	CategoryID uint            `json:"category_id" gorm:"uniqueIndex:uk_budget_user_category_month,priority:2;not null"`
	Category   Category        `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Year       int             `json:"year" gorm:"uniqueIndex:uk_budget_user_category_month,priority:3;not null"`
	Month      int             `json:"month" gorm:"uniqueIndex:uk_budget_user_category_month,priority:4;not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	User       User            `json:"-" gorm:"foreignKey:UserID"`
}

func (MonthlyBudget) TableName() string {
	return "monthly_budgets"
}
