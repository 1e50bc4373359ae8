package api

import (
	"errors"
	"strconv"
	"time"

	"expensetracker/ledger"
	"expensetracker/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var (
	errInvalidAmount = errors.New("金额必须大于0，且最多两位小数，不超过 9999999999.99")
	errInvalidDate   = errors.New("日期格式错误，应为: 2006-01-02")
	errInvalidPeriod = errors.New("年月参数错误，year 与 month 需同时提供，month 范围 1-12")
)

// parseID 解析路径参数 :id
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

// validAmount 金额为正、最多两位小数且不超过金额列范围
func validAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) || amount.GreaterThan(models.MaxAmount) {
		return errInvalidAmount
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return d, nil
}

// queryPeriod 读取 ?year=&month=，两者都缺省时返回 nil
func queryPeriod(c *gin.Context) (*ledger.Period, error) {
	yearStr, monthStr := c.Query("year"), c.Query("month")
	if yearStr == "" && monthStr == "" {
		return nil, nil
	}
	year, err1 := strconv.Atoi(yearStr)
	month, err2 := strconv.Atoi(monthStr)
	if err1 != nil || err2 != nil {
		return nil, errInvalidPeriod
	}
	p := ledger.NewPeriod(year, month)
	if !p.Valid() {
		return nil, errInvalidPeriod
	}
	return &p, nil
}

// queryPeriodOrCurrent 未指定年月时取当前月份
func queryPeriodOrCurrent(c *gin.Context) (ledger.Period, error) {
	p, err := queryPeriod(c)
	if err != nil {
		return ledger.Period{}, err
	}
	if p == nil {
		return ledger.PeriodOf(time.Now().UTC()), nil
	}
	return *p, nil
}

// listFilter 列表通用查询参数
type listFilter struct {
	Page       int  `form:"page"`
	PageSize   int  `form:"page_size"`
	CategoryID uint `form:"category_id"`
}

func bindListFilter(c *gin.Context) (ledger.ListFilter, bool) {
	var q listFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return ledger.ListFilter{}, false
	}
	p, err := queryPeriod(c)
	if err != nil {
		BadRequest(c, err.Error())
		return ledger.ListFilter{}, false
	}
	return ledger.ListFilter{
		Period:     p,
		CategoryID: q.CategoryID,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, true
}
