package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryHandler_Monthly(t *testing.T) {
	svc := setupSQLiteDB(t)
	router := newTestRouter(1)
	router.POST("/incomes", NewIncomeHandler(svc).Create)
	router.POST("/expenses", NewExpenseHandler(svc).Create)
	router.POST("/budgets", NewBudgetHandler(svc).Create)
	router.GET("/summary", NewSummaryHandler(svc).Monthly)

	require.Equal(t, 201, doRequest(router, "POST", "/incomes", `{"amount":"3000","date":"2025-06-01","income_category_id":1}`).Code)
	require.Equal(t, 201, doRequest(router, "POST", "/expenses", `{"amount":"1200.25","date":"2025-06-20","category_id":1}`).Code)
	require.Equal(t, 201, doRequest(router, "POST", "/budgets", `{"category_id":1,"year":2025,"month":6,"amount":"2000"}`).Code)

	w := doRequest(router, "GET", "/summary?year=2025&month=6", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "2025-06", data["period"])
	assert.Equal(t, "3000", data["income"])
	assert.Equal(t, "1200.25", data["expenses"])
	assert.Equal(t, "2000", data["budgets"])
	assert.Equal(t, "1799.75", data["remaining"])
	assert.Equal(t, "1000", data["unallocated"])

	w = doRequest(router, "GET", "/summary?year=2025&month=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "0", data["income"])

	assert.Equal(t, http.StatusBadRequest, doRequest(router, "GET", "/summary?month=6", "").Code)
}
