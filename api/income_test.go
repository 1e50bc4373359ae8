package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeHandler_CRUD(t *testing.T) {
	svc := setupSQLiteDB(t)
	router := newTestRouter(1)
	h := NewIncomeHandler(svc)
	router.POST("/incomes", h.Create)
	router.GET("/incomes", h.List)
	router.GET("/incomes/:id", h.Get)
	router.PUT("/incomes/:id", h.Update)
	router.DELETE("/incomes/:id", h.Delete)

	w := doRequest(router, "POST", "/incomes", `{"amount":"8000.50","date":"2025-06-01","income_category_id":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "8000.5", data["amount"])
	assert.Equal(t, "工资", data["income_category"].(map[string]interface{})["name"])

	// 超出金额列范围时拒绝，不做截断
	w = doRequest(router, "POST", "/incomes", `{"amount":"1000000000000000.00","date":"2025-06-02","income_category_id":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, "POST", "/incomes", `{"amount":"100","date":"2025-06-02","income_category_id":42}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "IncomeCategory with id '42' was not found.", decodeResponse(t, w)["message"])

	w = doRequest(router, "PUT", "/incomes/1", `{"amount":"9000","date":"2025-06-01","income_category_id":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "奖金", data["income_category"].(map[string]interface{})["name"])

	w = doRequest(router, "GET", "/incomes?year=2025&month=6", "")
	require.Equal(t, http.StatusOK, w.Code)
	page := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), page["total"])

	assert.Equal(t, http.StatusNoContent, doRequest(router, "DELETE", "/incomes/1", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, "GET", "/incomes/1", "").Code)
}

func TestIncomeHandler_ReductionBlocked(t *testing.T) {
	svc := setupSQLiteDB(t)
	router := newTestRouter(1)
	h := NewIncomeHandler(svc)
	router.POST("/incomes", h.Create)
	router.PUT("/incomes/:id", h.Update)
	router.DELETE("/incomes/:id", h.Delete)
	router.POST("/expenses", NewExpenseHandler(svc).Create)
	router.POST("/budgets", NewBudgetHandler(svc).Create)

	require.Equal(t, 201, doRequest(router, "POST", "/incomes", `{"amount":"5000","date":"2025-06-01","income_category_id":1}`).Code)
	require.Equal(t, 201, doRequest(router, "POST", "/budgets", `{"category_id":1,"year":2025,"month":6,"amount":"3000"}`).Code)
	require.Equal(t, 201, doRequest(router, "POST", "/expenses", `{"amount":"3500","date":"2025-06-09","category_id":2}`).Code)

	// 预算与支出同时超出时先报告预算
	w := doRequest(router, "PUT", "/incomes/1", `{"amount":"2000","date":"2025-06-01","income_category_id":1}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Cannot update income: total budgets (3000.00) would exceed total income (2000.00) for 2025-06.",
		decodeResponse(t, w)["message"])

	w = doRequest(router, "PUT", "/incomes/1", `{"amount":"3200","date":"2025-06-01","income_category_id":1}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Cannot update income: total expenses (3500.00) would exceed total income (3200.00) for 2025-06.",
		decodeResponse(t, w)["message"])

	w = doRequest(router, "DELETE", "/incomes/1", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Cannot delete income: total budgets (3000.00) would exceed total income (0.00) for 2025-06.",
		decodeResponse(t, w)["message"])

	w = doRequest(router, "PUT", "/incomes/1", `{"amount":"3500","date":"2025-06-01","income_category_id":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
