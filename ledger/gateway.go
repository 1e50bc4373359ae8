package ledger

import (
	"context"
	"fmt"

	"expensetracker/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Gateway 月度合计的唯一读取入口，每次都从明细行重新求和
type Gateway struct {
	db *gorm.DB
}

// NewGateway db 可以是事务句柄，此时读取的是该事务看到的数据
func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// TotalFor 返回用户在某月某类记录的金额合计，没有记录时为 0
func (g *Gateway) TotalFor(ctx context.Context, userID uint, p Period, kind Kind) (decimal.Decimal, error) {
	q := g.db.WithContext(ctx)

	switch kind {
	case KindIncome:
		start, end := p.Bounds()
		q = q.Model(&models.Income{}).Where("user_id = ? AND date >= ? AND date < ?", userID, start, end)
	case KindExpense:
		start, end := p.Bounds()
		q = q.Model(&models.Expense{}).Where("user_id = ? AND date >= ? AND date < ?", userID, start, end)
	case KindBudget:
		q = q.Model(&models.MonthlyBudget{}).Where("user_id = ? AND year = ? AND month = ?", userID, p.Year, int(p.Month))
	default:
		return decimal.Zero, fmt.Errorf("unknown ledger kind %d", kind)
	}

	var total decimal.NullDecimal
	if err := q.Select("SUM(amount)").Row().Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum %s for %s: %w", kind.plural(), p, err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	// 金额列为 decimal(12,2)，SQLite 会以浮点求和，这里统一回到两位小数
	return total.Decimal.Round(2), nil
}
