package ledger

import (
	"context"
	"errors"
	"fmt"

	"expensetracker/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetInput 创建/更新月度预算的参数
type BudgetInput struct {
	CategoryID uint
	Period     Period
	Amount     decimal.Decimal
}

// CreateBudget 新增月度预算，当月预算合计不得超过当月收入
func (s *Service) CreateBudget(ctx context.Context, userID uint, in BudgetInput) (*models.MonthlyBudget, error) {
	var budget models.MonthlyBudget
	err := s.inUserTx(ctx, userID, func(tx *gorm.DB) error {
		cat, err := findCategory(shareLock(tx), in.CategoryID)
		if err != nil {
			return err
		}
		if err := ensureBudgetSlotFree(tx, userID, cat, in.Period, 0); err != nil {
			return err
		}
		if err := checkAddition(ctx, NewGateway(tx), userID, KindBudget, OpCreate, in.Period, in.Amount); err != nil {
			return err
		}

		budget = models.MonthlyBudget{
			UserID:     userID,
			CategoryID: in.CategoryID,
			Year:       in.Period.Year,
			Month:      int(in.Period.Month),
			Amount:     in.Amount,
		}
		if err := omitAssociations(tx).Create(&budget).Error; err != nil {
			return fmt.Errorf("create budget: %w", err)
		}
		return tx.Preload("Category").First(&budget, budget.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// UpdateBudget 修改月度预算，校验规则与支出修改一致，只看目标月份
func (s *Service) UpdateBudget(ctx context.Context, userID, id uint, in BudgetInput) (*models.MonthlyBudget, error) {
	var budget models.MonthlyBudget
	err := s.inUserTx(ctx, userID, func(tx *gorm.DB) error {
		if err := findOwned(tx, &budget, "MonthlyBudget", id, userID); err != nil {
			return err
		}
		cat, err := findCategory(shareLock(tx), in.CategoryID)
		if err != nil {
			return err
		}
		if err := ensureBudgetSlotFree(tx, userID, cat, in.Period, budget.ID); err != nil {
			return err
		}

		source := NewPeriod(budget.Year, budget.Month)
		if err := checkMove(ctx, NewGateway(tx), userID, KindBudget, source, in.Period, budget.Amount, in.Amount); err != nil {
			return err
		}

		budget.CategoryID = in.CategoryID
		budget.Year = in.Period.Year
		budget.Month = int(in.Period.Month)
		budget.Amount = in.Amount
		if err := omitAssociations(tx).Save(&budget).Error; err != nil {
			return fmt.Errorf("update budget %d: %w", id, err)
		}
		return tx.Preload("Category").First(&budget, budget.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// DeleteBudget 删除月度预算，不做一致性校验
func (s *Service) DeleteBudget(ctx context.Context, userID, id uint) error {
	return s.inUserTx(ctx, userID, func(tx *gorm.DB) error {
		var budget models.MonthlyBudget
		if err := findOwned(tx, &budget, "MonthlyBudget", id, userID); err != nil {
			return err
		}
		if err := tx.Delete(&budget).Error; err != nil {
			return fmt.Errorf("delete budget %d: %w", id, err)
		}
		return nil
	})
}

// ensureBudgetSlotFree 同一用户、类别、年月只能有一条预算；exceptID 为正在修改的记录
func ensureBudgetSlotFree(tx *gorm.DB, userID uint, cat *models.Category, p Period, exceptID uint) error {
	var existing models.MonthlyBudget
	err := tx.Where("user_id = ? AND category_id = ? AND year = ? AND month = ? AND id <> ?",
		userID, cat.ID, p.Year, int(p.Month), exceptID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("check budget uniqueness: %w", err)
	}
	return conflictf("A budget for category '%s' already exists for %s.", cat.Name, p)
}
