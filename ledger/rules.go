package ledger

import (
	"github.com/shopspring/decimal"
)

// Kind 参与月度合计的记录类型
type Kind int

const (
	KindIncome Kind = iota
	KindExpense
	KindBudget
)

// Entity 记录类型名称，用于错误信息
func (k Kind) Entity() string {
	switch k {
	case KindIncome:
		return "Income"
	case KindExpense:
		return "Expense"
	case KindBudget:
		return "Budget"
	}
	return "Unknown"
}

// plural 合计名称，如 "expenses"
func (k Kind) plural() string {
	switch k {
	case KindIncome:
		return "income"
	case KindExpense:
		return "expenses"
	case KindBudget:
		return "budgets"
	}
	return "records"
}

// Operation 触发校验的操作
type Operation string

const (
	OpCreate Operation = "creation"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// verb 用于 "Cannot <verb> income" 这类句式
func (op Operation) verb() string {
	switch op {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	}
	return "delete"
}

// CheckAddition 判断向某月的支出或预算合计增加 delta 后是否仍不超过收入。
// income 为零时一律拒绝；新合计与收入相等时允许。
func CheckAddition(kind Kind, op Operation, p Period, income, currentTotal, delta decimal.Decimal) error {
	if income.IsZero() {
		return conflictf("No income recorded for %s. %s %s is forbidden when total income is zero.",
			p, kind.Entity(), op)
	}

	newTotal := currentTotal.Add(delta)
	if newTotal.GreaterThan(income) {
		return conflictf("Total %s (%s) would exceed total income (%s) for %s.",
			kind.plural(), newTotal.StringFixed(2), income.StringFixed(2), p)
	}
	return nil
}

// CheckIncomeReduction 判断某月收入降为 newIncome 后，预算与支出合计是否仍不超过收入。
// 两者同时超出时先报告预算。
func CheckIncomeReduction(op Operation, p Period, newIncome, budgetTotal, expenseTotal decimal.Decimal) error {
	if budgetTotal.GreaterThan(newIncome) {
		return conflictf("Cannot %s income: total budgets (%s) would exceed total income (%s) for %s.",
			op.verb(), budgetTotal.StringFixed(2), newIncome.StringFixed(2), p)
	}
	if expenseTotal.GreaterThan(newIncome) {
		return conflictf("Cannot %s income: total expenses (%s) would exceed total income (%s) for %s.",
			op.verb(), expenseTotal.StringFixed(2), newIncome.StringFixed(2), p)
	}
	return nil
}
