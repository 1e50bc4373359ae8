package ledger

import (
	"context"
	"fmt"
	"time"

	"expensetracker/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseInput 创建/更新支出的参数，金额已由上游校验为正数
type ExpenseInput struct {
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CategoryID  uint
}

// CreateExpense 新增支出，当月支出合计不得超过当月收入
func (s *Service) CreateExpense(ctx context.Context, userID uint, in ExpenseInput) (*models.Expense, error) {
	var expense models.Expense
	err := s.inUserTx(ctx, userID, func(tx *gorm.DB) error {
		if _, err := findCategory(shareLock(tx), in.CategoryID); err != nil {
			return err
		}

		date := NormalizeDate(in.Date)
		if err := checkAddition(ctx, NewGateway(tx), userID, KindExpense, OpCreate, PeriodOf(date), in.Amount); err != nil {
			return err
		}

		expense = models.Expense{
			UserID:      userID,
			Amount:      in.Amount,
			Description: in.Description,
			Date:        date,
			CategoryID:  in.CategoryID,
		}
		if err := omitAssociations(tx).Create(&expense).Error; err != nil {
			return fmt.Errorf("create expense: %w", err)
		}
		return tx.Preload("Category").First(&expense, expense.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// UpdateExpense 修改支出。只校验目标月份：原月份移走金额只会让原月份更宽松。
func (s *Service) UpdateExpense(ctx context.Context, userID, id uint, in ExpenseInput) (*models.Expense, error) {
	var expense models.Expense
	err := s.inUserTx(ctx, userID, func(tx *gorm.DB) error {
		if err := findOwned(tx, &expense, "Expense", id, userID); err != nil {
			return err
		}
		if _, err := findCategory(shareLock(tx), in.CategoryID); err != nil {
			return err
		}

		date := NormalizeDate(in.Date)
		source, target := PeriodOf(expense.Date), PeriodOf(date)
		if err := checkMove(ctx, NewGateway(tx), userID, KindExpense, source, target, expense.Amount, in.Amount); err != nil {
			return err
		}

		expense.Amount = in.Amount
		expense.Description = in.Description
		expense.Date = date
		expense.CategoryID = in.CategoryID
		if err := omitAssociations(tx).Save(&expense).Error; err != nil {
			return fmt.Errorf("update expense %d: %w", id, err)
		}
		return tx.Preload("Category").First(&expense, expense.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteExpense 删除支出，不做一致性校验
func (s *Service) DeleteExpense(ctx context.Context, userID, id uint) error {
	return s.inUserTx(ctx, userID, func(tx *gorm.DB) error {
		var expense models.Expense
		if err := findOwned(tx, &expense, "Expense", id, userID); err != nil {
			return err
		}
		if err := tx.Delete(&expense).Error; err != nil {
			return fmt.Errorf("delete expense %d: %w", id, err)
		}
		return nil
	})
}

// checkAddition 读取目标月的收入与同类合计，校验加上 delta 后是否超出收入
func checkAddition(ctx context.Context, gw *Gateway, userID uint, kind Kind, op Operation, p Period, delta decimal.Decimal) error {
	income, err := gw.TotalFor(ctx, userID, p, KindIncome)
	if err != nil {
		return err
	}
	current, err := gw.TotalFor(ctx, userID, p, kind)
	if err != nil {
		return err
	}
	return CheckAddition(kind, op, p, income, current, delta)
}

// checkMove 支出/预算修改时对目标月份的校验。
// 跨月：原金额不在目标月合计中，目标月增加完整的新金额；
// 同月：目标月合计中已含原金额，只增加差额，金额严格减少时无需校验。
func checkMove(ctx context.Context, gw *Gateway, userID uint, kind Kind, source, target Period, oldAmount, newAmount decimal.Decimal) error {
	monthChanged := source != target
	if monthChanged {
		return checkAddition(ctx, gw, userID, kind, OpUpdate, target, newAmount)
	}
	if newAmount.LessThan(oldAmount) {
		return nil
	}
	return checkAddition(ctx, gw, userID, kind, OpUpdate, target, newAmount.Sub(oldAmount))
}
