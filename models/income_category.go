package models

import "time"

// IncomeCategory 收入类别（后台维护）
type IncomeCategory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Sort      int       `json:"sort" gorm:"default:0;index"`
	Color     string    `json:"color" gorm:"size:20;default:#64748b"` // 颜色代码，如 #10b981
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (IncomeCategory) TableName() string {
	return "income_categories"
}

// DefaultIncomeCategories 初始化时写入的收入类别
func DefaultIncomeCategories() []IncomeCategory {
	return []IncomeCategory{
		{Name: "工资", Sort: 10, Color: "#10b981"},
		{Name: "奖金", Sort: 20, Color: "#3b82f6"},
		{Name: "理财", Sort: 30, Color: "#a855f7"},
		{Name: "兼职", Sort: 40, Color: "#f59e0b"},
		{Name: "其他", Sort: 50, Color: DefaultCategoryColor},
	}
}
