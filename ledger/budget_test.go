package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"expensetracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBudget(t *testing.T) {
	s, db := setupLedger(t)
	ctx := context.Background()
	june := NewPeriod(2025, 6)

	_, err := s.CreateBudget(ctx, alice, BudgetInput{CategoryID: food, Period: june, Amount: dec("100")})
	require.Error(t, err)
	assert.Equal(t, "No income recorded for 2025-06. Budget creation is forbidden when total income is zero.", err.Error())

	addIncome(t, s, alice, "3000", day(2025, time.June, 1))

	b, err := s.CreateBudget(ctx, alice, BudgetInput{CategoryID: food, Period: june, Amount: dec("2000")})
	require.NoError(t, err)
	assert.Equal(t, 2025, b.Year)
	assert.Equal(t, 6, b.Month)
	assert.Equal(t, "餐饮", b.Category.Name)

	_, err = s.CreateBudget(ctx, alice, BudgetInput{CategoryID: transport, Period: june, Amount: dec("1000.01")})
	require.Error(t, err)
	assert.Equal(t, "Total budgets (3000.01) would exceed total income (3000.00) for 2025-06.", err.Error())

	addBudget(t, s, alice, transport, june, "1000")
	requireConsistent(t, db, alice, june)
}

func TestCreateBudget_DuplicateSlot(t *testing.T) {
	s, _ := setupLedger(t)
	june := NewPeriod(2025, 6)
	addIncome(t, s, alice, "3000", day(2025, time.June, 1))
	addIncome(t, s, bob, "3000", day(2025, time.June, 1))
	addBudget(t, s, alice, food, june, "100")

	_, err := s.CreateBudget(context.Background(), alice, BudgetInput{CategoryID: food, Period: june, Amount: dec("100")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "A budget for category '餐饮' already exists for 2025-06.", err.Error())

	// 不同用户可以各自设置
	addBudget(t, s, bob, food, june, "100")
}

func TestCreateBudget_CategoryNotFound(t *testing.T) {
	s, _ := setupLedger(t)
	_, err := s.CreateBudget(context.Background(), alice, BudgetInput{CategoryID: 7, Period: NewPeriod(2025, 6), Amount: dec("1")})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpdateBudget_MonthMove(t *testing.T) {
	s, db := setupLedger(t)
	ctx := context.Background()
	june, july := NewPeriod(2025, 6), NewPeriod(2025, 7)

	addIncome(t, s, alice, "3000", day(2025, time.June, 1))
	addIncome(t, s, alice, "1000", day(2025, time.July, 1))
	b := addBudget(t, s, alice, food, june, "2500")
	addBudget(t, s, alice, transport, july, "600")

	_, err := s.UpdateBudget(ctx, alice, b.ID, BudgetInput{CategoryID: food, Period: july, Amount: dec("500")})
	require.Error(t, err)
	assert.Equal(t, "Total budgets (1100.00) would exceed total income (1000.00) for 2025-07.", err.Error())

	moved, err := s.UpdateBudget(ctx, alice, b.ID, BudgetInput{CategoryID: food, Period: july, Amount: dec("400")})
	require.NoError(t, err)
	assert.Equal(t, 7, moved.Month)

	assert.True(t, total(t, db, alice, june, KindBudget).IsZero())
	assert.Equal(t, "1000.00", total(t, db, alice, july, KindBudget).StringFixed(2))
	requireConsistent(t, db, alice, june, july)
}

func TestUpdateBudget_SameMonth(t *testing.T) {
	s, _ := setupLedger(t)
	ctx := context.Background()
	june := NewPeriod(2025, 6)

	addIncome(t, s, alice, "1000", day(2025, time.June, 1))
	b := addBudget(t, s, alice, food, june, "500")
	addBudget(t, s, alice, transport, june, "300")

	_, err := s.UpdateBudget(ctx, alice, b.ID, BudgetInput{CategoryID: food, Period: june, Amount: dec("700")})
	require.NoError(t, err)

	_, err = s.UpdateBudget(ctx, alice, b.ID, BudgetInput{CategoryID: food, Period: june, Amount: dec("701")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Total budgets (1001.00)")

	// 改到已有预算的类别上
	_, err = s.UpdateBudget(ctx, alice, b.ID, BudgetInput{CategoryID: transport, Period: june, Amount: dec("100")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestDeleteBudget(t *testing.T) {
	s, db := setupLedger(t)
	ctx := context.Background()
	june := NewPeriod(2025, 6)

	addIncome(t, s, alice, "1000", day(2025, time.June, 1))
	b := addBudget(t, s, alice, food, june, "500")

	assert.True(t, errors.Is(s.DeleteBudget(ctx, bob, b.ID), ErrNotFound))
	require.NoError(t, s.DeleteBudget(ctx, alice, b.ID))

	var count int64
	db.Model(&models.MonthlyBudget{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// 物理删除后同一类别、月份可以重新设置
	addBudget(t, s, alice, food, june, "500")
}
