package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"expensetracker/models"

	"gorm.io/gorm"
)

// CategoryInput 类别创建/更新参数；更新时 nil 字段保持不变
type CategoryInput struct {
	Name  *string
	Sort  *int
	Color *string
}

// ListCategories 消费类别，按 sort、id 升序
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	if err := s.db.WithContext(ctx).Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

// ListIncomeCategories 收入类别，按 sort、id 升序
func (s *Service) ListIncomeCategories(ctx context.Context) ([]models.IncomeCategory, error) {
	var list []models.IncomeCategory
	if err := s.db.WithContext(ctx).Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list income categories: %w", err)
	}
	return list, nil
}

// GetCategory 消费类别详情
func (s *Service) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return findCategory(s.db.WithContext(ctx), id)
}

// GetIncomeCategory 收入类别详情
func (s *Service) GetIncomeCategory(ctx context.Context, id uint) (*models.IncomeCategory, error) {
	return findIncomeCategory(s.db.WithContext(ctx), id)
}

// CreateCategory 新增消费类别，名称唯一
func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	name, err := categoryName(in.Name)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if err := ensureNameFree(db, &models.Category{}, name, 0); err != nil {
		return nil, err
	}

	cat := models.Category{Name: name, Color: categoryColor(in.Color)}
	if in.Sort != nil {
		cat.Sort = *in.Sort
	}
	if err := db.Create(&cat).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &cat, nil
}

// UpdateCategory 修改消费类别
func (s *Service) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	db := s.db.WithContext(ctx)
	cat, err := findCategory(db, id)
	if err != nil {
		return nil, err
	}
	updates, err := categoryUpdates(db, &models.Category{}, id, in)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := db.Model(cat).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update category %d: %w", id, err)
		}
	}
	return findCategory(db, id)
}

// DeleteCategory 删除消费类别；仍被支出（含已删除的支出）或预算引用时拒绝。
// 类别为物理删除，名称可以重新使用
func (s *Service) DeleteCategory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCategoryRow(tx, &models.Category{}, id); err != nil {
			return err
		}
		cat, err := findCategory(tx, id)
		if err != nil {
			return err
		}

		var expenses, budgets int64
		if err := tx.Unscoped().Model(&models.Expense{}).Where("category_id = ?", id).Count(&expenses).Error; err != nil {
			return fmt.Errorf("count expenses of category %d: %w", id, err)
		}
		if err := tx.Model(&models.MonthlyBudget{}).Where("category_id = ?", id).Count(&budgets).Error; err != nil {
			return fmt.Errorf("count budgets of category %d: %w", id, err)
		}
		if expenses > 0 || budgets > 0 {
			return conflictf("Category with id '%d' cannot be deleted because it has linked expenses or budgets.", id)
		}

		if err := tx.Delete(cat).Error; err != nil {
			return fmt.Errorf("delete category %d: %w", id, err)
		}
		return nil
	})
}

// CreateIncomeCategory 新增收入类别，名称唯一
func (s *Service) CreateIncomeCategory(ctx context.Context, in CategoryInput) (*models.IncomeCategory, error) {
	name, err := categoryName(in.Name)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if err := ensureNameFree(db, &models.IncomeCategory{}, name, 0); err != nil {
		return nil, err
	}

	cat := models.IncomeCategory{Name: name, Color: categoryColor(in.Color)}
	if in.Sort != nil {
		cat.Sort = *in.Sort
	}
	if err := db.Create(&cat).Error; err != nil {
		return nil, fmt.Errorf("create income category: %w", err)
	}
	return &cat, nil
}

// UpdateIncomeCategory 修改收入类别
func (s *Service) UpdateIncomeCategory(ctx context.Context, id uint, in CategoryInput) (*models.IncomeCategory, error) {
	db := s.db.WithContext(ctx)
	cat, err := findIncomeCategory(db, id)
	if err != nil {
		return nil, err
	}
	updates, err := categoryUpdates(db, &models.IncomeCategory{}, id, in)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := db.Model(cat).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update income category %d: %w", id, err)
		}
	}
	return findIncomeCategory(db, id)
}

// DeleteIncomeCategory 删除收入类别；仍被收入（含已删除的收入）引用时拒绝
func (s *Service) DeleteIncomeCategory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCategoryRow(tx, &models.IncomeCategory{}, id); err != nil {
			return err
		}
		cat, err := findIncomeCategory(tx, id)
		if err != nil {
			return err
		}

		var incomes int64
		if err := tx.Unscoped().Model(&models.Income{}).Where("income_category_id = ?", id).Count(&incomes).Error; err != nil {
			return fmt.Errorf("count incomes of income category %d: %w", id, err)
		}
		if incomes > 0 {
			return conflictf("Income category with id '%d' cannot be deleted because it has linked incomes.", id)
		}

		if err := tx.Delete(cat).Error; err != nil {
			return fmt.Errorf("delete income category %d: %w", id, err)
		}
		return nil
	})
}

// lockCategoryRow 与 lockUser 相同，用空更新取得类别行的排他锁，
// 持有共享锁引用该类别的变更事务提交前，删除会一直等待。
// 类别不存在时不加锁，交给后续的 find 返回 NotFound
func lockCategoryRow(tx *gorm.DB, model any, id uint) error {
	err := tx.Model(model).Where("id = ?", id).UpdateColumn("updated_at", gorm.Expr("updated_at")).Error
	if err != nil {
		return fmt.Errorf("lock category %d: %w", id, err)
	}
	return nil
}

// ErrEmptyName 类别名称为空
var ErrEmptyName = errors.New("category name must not be empty")

func categoryName(name *string) (string, error) {
	if name == nil {
		return "", ErrEmptyName
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return "", ErrEmptyName
	}
	return trimmed, nil
}

func categoryColor(color *string) string {
	if color == nil || *color == "" {
		return models.DefaultCategoryColor
	}
	return *color
}

// ensureNameFree model 为 *models.Category 或 *models.IncomeCategory
func ensureNameFree(db *gorm.DB, model any, name string, exceptID uint) error {
	var count int64
	if err := db.Model(model).Where("name = ? AND id <> ?", name, exceptID).Count(&count).Error; err != nil {
		return fmt.Errorf("check category name: %w", err)
	}
	if count > 0 {
		return conflictf("Category name '%s' already exists.", name)
	}
	return nil
}

func categoryUpdates(db *gorm.DB, model any, id uint, in CategoryInput) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		name, err := categoryName(in.Name)
		if err != nil {
			return nil, err
		}
		if err := ensureNameFree(db, model, name, id); err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if in.Sort != nil {
		updates["sort"] = *in.Sort
	}
	if in.Color != nil {
		updates["color"] = categoryColor(in.Color)
	}
	return updates, nil
}
