package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"expensetracker/database"
	"expensetracker/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	alice uint = 1
	bob   uint = 2

	food      uint = 1
	transport uint = 2
	salary    uint = 1
	bonus     uint = 2
)

// setupLedger 每个测试一个独立的 SQLite 文件库，已迁移并写入用户与类别
func setupLedger(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.db")
	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(path)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Create(&[]models.User{
		{ID: alice, Username: "alice", Password: "x", Role: models.RoleUser},
		{ID: bob, Username: "bob", Password: "x", Role: models.RoleUser},
	}).Error)
	require.NoError(t, db.Create(&[]models.Category{
		{ID: food, Name: "餐饮", Sort: 10},
		{ID: transport, Name: "交通", Sort: 20},
	}).Error)
	require.NoError(t, db.Create(&[]models.IncomeCategory{
		{ID: salary, Name: "工资", Sort: 10},
		{ID: bonus, Name: "奖金", Sort: 20},
	}).Error)

	return NewService(db), db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func addIncome(t *testing.T, s *Service, userID uint, amount string, date time.Time) *models.Income {
	t.Helper()
	income, err := s.CreateIncome(context.Background(), userID, IncomeInput{
		Amount:           dec(amount),
		Date:             date,
		IncomeCategoryID: salary,
	})
	require.NoError(t, err)
	return income
}

func addExpense(t *testing.T, s *Service, userID uint, amount string, date time.Time) *models.Expense {
	t.Helper()
	expense, err := s.CreateExpense(context.Background(), userID, ExpenseInput{
		Amount:     dec(amount),
		Date:       date,
		CategoryID: food,
	})
	require.NoError(t, err)
	return expense
}

func addBudget(t *testing.T, s *Service, userID, categoryID uint, p Period, amount string) *models.MonthlyBudget {
	t.Helper()
	budget, err := s.CreateBudget(context.Background(), userID, BudgetInput{
		CategoryID: categoryID,
		Period:     p,
		Amount:     dec(amount),
	})
	require.NoError(t, err)
	return budget
}

func total(t *testing.T, db *gorm.DB, userID uint, p Period, kind Kind) decimal.Decimal {
	t.Helper()
	v, err := NewGateway(db).TotalFor(context.Background(), userID, p, kind)
	require.NoError(t, err)
	return v
}

// requireConsistent 每个月份的支出与预算合计都不超过收入
func requireConsistent(t *testing.T, db *gorm.DB, userID uint, periods ...Period) {
	t.Helper()
	for _, p := range periods {
		income := total(t, db, userID, p, KindIncome)
		require.True(t, total(t, db, userID, p, KindExpense).LessThanOrEqual(income), "expenses exceed income in %s", p)
		require.True(t, total(t, db, userID, p, KindBudget).LessThanOrEqual(income), "budgets exceed income in %s", p)
	}
}
