package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAddition(t *testing.T) {
	june := NewPeriod(2025, 6)

	tests := []struct {
		name    string
		kind    Kind
		op      Operation
		income  string
		current string
		delta   string
		wantErr string
	}{
		{"低于收入", KindExpense, OpCreate, "1000", "500", "200", ""},
		{"恰好等于收入", KindExpense, OpCreate, "1000", "800", "200", ""},
		{"超出收入", KindExpense, OpCreate, "1000", "900", "200",
			"Total expenses (1100.00) would exceed total income (1000.00) for 2025-06."},
		{"超出一分", KindBudget, OpUpdate, "1000.00", "999.99", "0.02",
			"Total budgets (1000.01) would exceed total income (1000.00) for 2025-06."},
		{"收入为零", KindExpense, OpCreate, "0", "0", "1",
			"No income recorded for 2025-06. Expense creation is forbidden when total income is zero."},
		{"收入为零的预算修改", KindBudget, OpUpdate, "0", "0", "5",
			"No income recorded for 2025-06. Budget update is forbidden when total income is zero."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAddition(tt.kind, tt.op, june, dec(tt.income), dec(tt.current), dec(tt.delta))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConflict))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestCheckIncomeReduction(t *testing.T) {
	p := NewPeriod(2025, 6)

	assert.NoError(t, CheckIncomeReduction(OpDelete, p, dec("3000"), dec("3000"), dec("2999")))
	assert.NoError(t, CheckIncomeReduction(OpUpdate, p, dec("0"), dec("0"), dec("0")))

	err := CheckIncomeReduction(OpDelete, p, dec("0"), dec("3000"), dec("0"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "Cannot delete income: total budgets (3000.00) would exceed total income (0.00) for 2025-06.", err.Error())

	err = CheckIncomeReduction(OpUpdate, p, dec("100"), dec("50"), dec("150.5"))
	require.Error(t, err)
	assert.Equal(t, "Cannot update income: total expenses (150.50) would exceed total income (100.00) for 2025-06.", err.Error())
}

func TestCheckIncomeReduction_BudgetsReportedFirst(t *testing.T) {
	err := CheckIncomeReduction(OpUpdate, NewPeriod(2025, 1), dec("10"), dec("20"), dec("30"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budgets")
	assert.NotContains(t, err.Error(), "expenses")
}

func TestKindEntity(t *testing.T) {
	assert.Equal(t, "Income", KindIncome.Entity())
	assert.Equal(t, "Expense", KindExpense.Entity())
	assert.Equal(t, "Budget", KindBudget.Entity())
}
