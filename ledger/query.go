package ledger

import (
	"context"
	"fmt"

	"expensetracker/models"

	"gorm.io/gorm"
)

// ListFilter 列表查询条件，Period 为空时不按月份过滤
type ListFilter struct {
	Period     *Period
	CategoryID uint
	Page       int
	PageSize   int
}

// Page 分页结果
type Page[T any] struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	List     []T   `json:"list"`
}

func (f *ListFilter) normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 10
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
}

// GetExpense 获取单条支出
func (s *Service) GetExpense(ctx context.Context, userID, id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := findOwned(s.db.WithContext(ctx).Preload("Category"), &expense, "Expense", id, userID); err != nil {
		return nil, err
	}
	return &expense, nil
}

// GetIncome 获取单条收入
func (s *Service) GetIncome(ctx context.Context, userID, id uint) (*models.Income, error) {
	var income models.Income
	if err := findOwned(s.db.WithContext(ctx).Preload("IncomeCategory"), &income, "Income", id, userID); err != nil {
		return nil, err
	}
	return &income, nil
}

// GetBudget 获取单条预算
func (s *Service) GetBudget(ctx context.Context, userID, id uint) (*models.MonthlyBudget, error) {
	var budget models.MonthlyBudget
	if err := findOwned(s.db.WithContext(ctx).Preload("Category"), &budget, "MonthlyBudget", id, userID); err != nil {
		return nil, err
	}
	return &budget, nil
}

// ListExpenses 分页查询支出，按日期倒序
func (s *Service) ListExpenses(ctx context.Context, userID uint, f ListFilter) (*Page[models.Expense], error) {
	f.normalize()
	query := s.db.WithContext(ctx).Model(&models.Expense{}).Where("user_id = ?", userID)
	query = applyDateFilter(query, f)
	if f.CategoryID > 0 {
		query = query.Where("category_id = ?", f.CategoryID)
	}

	page := &Page[models.Expense]{Page: f.Page, PageSize: f.PageSize}
	if err := query.Count(&page.Total).Error; err != nil {
		return nil, fmt.Errorf("count expenses: %w", err)
	}
	offset := (f.Page - 1) * f.PageSize
	if err := query.Preload("Category").Order("date DESC, id DESC").Offset(offset).Limit(f.PageSize).Find(&page.List).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return page, nil
}

// ListIncomes 分页查询收入，按日期倒序
func (s *Service) ListIncomes(ctx context.Context, userID uint, f ListFilter) (*Page[models.Income], error) {
	f.normalize()
	query := s.db.WithContext(ctx).Model(&models.Income{}).Where("user_id = ?", userID)
	query = applyDateFilter(query, f)
	if f.CategoryID > 0 {
		query = query.Where("income_category_id = ?", f.CategoryID)
	}

	page := &Page[models.Income]{Page: f.Page, PageSize: f.PageSize}
	if err := query.Count(&page.Total).Error; err != nil {
		return nil, fmt.Errorf("count incomes: %w", err)
	}
	offset := (f.Page - 1) * f.PageSize
	if err := query.Preload("IncomeCategory").Order("date DESC, id DESC").Offset(offset).Limit(f.PageSize).Find(&page.List).Error; err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	return page, nil
}

// ListBudgets 查询预算，p 为空时返回全部月份
func (s *Service) ListBudgets(ctx context.Context, userID uint, p *Period) ([]models.MonthlyBudget, error) {
	query := s.db.WithContext(ctx).Preload("Category").Where("user_id = ?", userID)
	if p != nil {
		query = query.Where("year = ? AND month = ?", p.Year, int(p.Month))
	}
	var list []models.MonthlyBudget
	if err := query.Order("year DESC, month DESC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return list, nil
}

func applyDateFilter(query *gorm.DB, f ListFilter) *gorm.DB {
	if f.Period == nil {
		return query
	}
	start, end := f.Period.Bounds()
	return query.Where("date >= ? AND date < ?", start, end)
}
