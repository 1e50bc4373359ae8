package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income 收入记录模型
type Income struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	UserID           uint            `json:"user_id" gorm:"index:idx_incomes_user_date;not null"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Date             time.Time       `json:"date" gorm:"index:idx_incomes_user_date;not null"`
	IncomeCategoryID uint            `json:"income_category_id" gorm:"index;not null"`
	IncomeCategory   IncomeCategory  `json:"income_category" gorm:"foreignKey:IncomeCategoryID;constraint:OnDelete:RESTRICT"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `json:"-" gorm:"index"`
	User             User            `json:"-" gorm:"foreignKey:UserID"`
}

func (Income) TableName() string {
	return "incomes"
}
