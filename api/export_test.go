package api

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportHandler_ExportExcel(t *testing.T) {
	svc := setupSQLiteDB(t)
	router := newTestRouter(1)
	router.POST("/incomes", NewIncomeHandler(svc).Create)
	router.POST("/expenses", NewExpenseHandler(svc).Create)
	router.POST("/budgets", NewBudgetHandler(svc).Create)
	router.GET("/export/excel", NewExportHandler(svc).ExportExcel)

	require.Equal(t, 201, doRequest(router, "POST", "/incomes", `{"amount":"3000","date":"2025-06-01","income_category_id":1}`).Code)
	require.Equal(t, 201, doRequest(router, "POST", "/expenses", `{"amount":"99.99","description":"午餐","date":"2025-06-12","category_id":1}`).Code)
	require.Equal(t, 201, doRequest(router, "POST", "/expenses", `{"amount":"20","description":"地铁","date":"2025-06-13","category_id":2}`).Code)
	require.Equal(t, 201, doRequest(router, "POST", "/budgets", `{"category_id":1,"year":2025,"month":6,"amount":"800"}`).Code)

	w := doRequest(router, "GET", "/export/excel?year=2025&month=6", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ledger_2025-06.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Incomes", "Expenses", "Budgets"}, f.GetSheetList())

	period, _ := f.GetCellValue("Summary", "B2")
	assert.Equal(t, "2025-06", period)
	income, _ := f.GetCellValue("Summary", "B3")
	assert.Equal(t, "3000", income)

	rows, err := f.GetRows("Expenses")
	require.NoError(t, err)
	// 表头 + 两条明细 + 合计，按日期倒序
	require.Len(t, rows, 4)
	assert.Equal(t, "地铁", rows[1][3])
	assert.Equal(t, "午餐", rows[2][3])
	assert.Equal(t, "合计", rows[3][0])

	budgetName, _ := f.GetCellValue("Budgets", "B2")
	assert.Equal(t, "餐饮", budgetName)
}

func TestExportHandler_ExportExcel_InvalidPeriod(t *testing.T) {
	svc := setupSQLiteDB(t)
	router := newTestRouter(1)
	router.GET("/export/excel", NewExportHandler(svc).ExportExcel)

	w := doRequest(router, "GET", "/export/excel?year=2025&month=13", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
