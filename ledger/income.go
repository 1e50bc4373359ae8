package ledger

import (
	"context"
	"fmt"
	"time"

	"expensetracker/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeInput 创建/更新收入的参数
type IncomeInput struct {
	Amount           decimal.Decimal
	Date             time.Time
	IncomeCategoryID uint
}

// CreateIncome 新增收入。增加收入只会放宽约束，只需校验类别存在。
func (s *Service) CreateIncome(ctx context.Context, userID uint, in IncomeInput) (*models.Income, error) {
	var income models.Income
	err := s.inUserTx(ctx, userID, func(tx *gorm.DB) error {
		if _, err := findIncomeCategory(shareLock(tx), in.IncomeCategoryID); err != nil {
			return err
		}

		income = models.Income{
			UserID:           userID,
			Amount:           in.Amount,
			Date:             NormalizeDate(in.Date),
			IncomeCategoryID: in.IncomeCategoryID,
		}
		if err := omitAssociations(tx).Create(&income).Error; err != nil {
			return fmt.Errorf("create income: %w", err)
		}
		return tx.Preload("IncomeCategory").First(&income, income.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &income, nil
}

// UpdateIncome 修改收入。
// 收入跨月移出或同月减少时，原月份收入下降，需要校验原月份的预算与支出；
// 目标月份收入只增不减，无需校验。
func (s *Service) UpdateIncome(ctx context.Context, userID, id uint, in IncomeInput) (*models.Income, error) {
	var income models.Income
	err := s.inUserTx(ctx, userID, func(tx *gorm.DB) error {
		if err := findOwned(tx, &income, "Income", id, userID); err != nil {
			return err
		}
		if _, err := findIncomeCategory(shareLock(tx), in.IncomeCategoryID); err != nil {
			return err
		}

		date := NormalizeDate(in.Date)
		source, target := PeriodOf(income.Date), PeriodOf(date)
		monthChanged := source != target
		amountDecreased := in.Amount.LessThan(income.Amount)

		if monthChanged || amountDecreased {
			gw := NewGateway(tx)
			sourceIncome, err := gw.TotalFor(ctx, userID, source, KindIncome)
			if err != nil {
				return err
			}

			var remaining decimal.Decimal
			if monthChanged {
				remaining = sourceIncome.Sub(income.Amount)
			} else {
				remaining = sourceIncome.Sub(income.Amount).Add(in.Amount)
			}
			if err := checkIncomeReduction(ctx, gw, userID, OpUpdate, source, remaining); err != nil {
				return err
			}
		}

		income.Amount = in.Amount
		income.Date = date
		income.IncomeCategoryID = in.IncomeCategoryID
		if err := omitAssociations(tx).Save(&income).Error; err != nil {
			return fmt.Errorf("update income %d: %w", id, err)
		}
		return tx.Preload("IncomeCategory").First(&income, income.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &income, nil
}

// DeleteIncome 删除收入，删除后当月收入仍需覆盖当月预算与支出
func (s *Service) DeleteIncome(ctx context.Context, userID, id uint) error {
	return s.inUserTx(ctx, userID, func(tx *gorm.DB) error {
		var income models.Income
		if err := findOwned(tx, &income, "Income", id, userID); err != nil {
			return err
		}

		p := PeriodOf(income.Date)
		gw := NewGateway(tx)
		total, err := gw.TotalFor(ctx, userID, p, KindIncome)
		if err != nil {
			return err
		}
		if err := checkIncomeReduction(ctx, gw, userID, OpDelete, p, total.Sub(income.Amount)); err != nil {
			return err
		}

		if err := tx.Delete(&income).Error; err != nil {
			return fmt.Errorf("delete income %d: %w", id, err)
		}
		return nil
	})
}

func checkIncomeReduction(ctx context.Context, gw *Gateway, userID uint, op Operation, p Period, newIncome decimal.Decimal) error {
	budgets, err := gw.TotalFor(ctx, userID, p, KindBudget)
	if err != nil {
		return err
	}
	expenses, err := gw.TotalFor(ctx, userID, p, KindExpense)
	if err != nil {
		return err
	}
	return CheckIncomeReduction(op, p, newIncome, budgets, expenses)
}
