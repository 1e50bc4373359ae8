package models

import "time"

// DefaultCategoryColor 未指定颜色时使用的灰色
const DefaultCategoryColor = "#64748b"

// Category 消费类别（后台维护，所有用户共享）
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Sort      int       `json:"sort" gorm:"default:0;index"`
	Color     string    `json:"color" gorm:"size:20;default:#64748b"` // 颜色代码，如 #ef4444
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "expense_categories"
}

// DefaultCategories 初始化时写入的消费类别及颜色（与前端保持一致）
func DefaultCategories() []Category {
	return []Category{
		{Name: "餐饮", Sort: 10, Color: "#ef4444"},
		{Name: "交通", Sort: 20, Color: "#3b82f6"},
		{Name: "购物", Sort: 30, Color: "#a855f7"},
		{Name: "娱乐", Sort: 40, Color: "#ec4899"},
		{Name: "医疗", Sort: 50, Color: "#10b981"},
		{Name: "教育", Sort: 60, Color: "#f59e0b"},
		{Name: "住房", Sort: 70, Color: "#14b8a6"},
		{Name: "其他", Sort: 80, Color: DefaultCategoryColor},
	}
}
