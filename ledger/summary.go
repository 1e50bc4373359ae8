package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// MonthlySummary 某月收入、支出、预算合计
type MonthlySummary struct {
	Period      string          `json:"period"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Budgets     decimal.Decimal `json:"budgets"`
	Remaining   decimal.Decimal `json:"remaining"`   // 收入 - 支出
	Unallocated decimal.Decimal `json:"unallocated"` // 收入 - 预算
}

// MonthlySummary 三项合计并发读取，仅用于展示。
// 在 ReadTx 内调用时三项共用一个连接，改为顺序执行
func (s *Service) MonthlySummary(ctx context.Context, userID uint, p Period) (*MonthlySummary, error) {
	gw := NewGateway(s.db)
	var income, expenses, budgets decimal.Decimal

	g, gctx := errgroup.WithContext(ctx)
	if s.inTx {
		g.SetLimit(1)
	}
	g.Go(func() (err error) {
		income, err = gw.TotalFor(gctx, userID, p, KindIncome)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = gw.TotalFor(gctx, userID, p, KindExpense)
		return err
	})
	g.Go(func() (err error) {
		budgets, err = gw.TotalFor(gctx, userID, p, KindBudget)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &MonthlySummary{
		Period:      p.String(),
		Income:      income,
		Expenses:    expenses,
		Budgets:     budgets,
		Remaining:   income.Sub(expenses),
		Unallocated: income.Sub(budgets),
	}, nil
}
