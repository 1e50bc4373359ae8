package api

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"

	"expensetracker/ledger"
	"expensetracker/middleware"
	"expensetracker/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	svc *ledger.Service
}

// NewExportHandler 创建导出处理器
func NewExportHandler(svc *ledger.Service) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// 单月导出时一次取出全部明细
const exportPageSize = 100

// ExportExcel 导出月度报表
// @Summary 导出月度 Excel 报表
// @Description 包含 Summary、Incomes、Expenses、Budgets 四个工作表。不传年月时取当前月份
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param year query int false "年"
// @Param month query int false "月 (1-12)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	p, err := queryPeriodOrCurrent(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	buf, err := h.buildWorkbook(c.Request.Context(), middleware.GetCurrentUserID(c), p)
	if err != nil {
		log.Printf("[%s] 生成 Excel 失败: %v", middleware.GetRequestID(c), err)
		InternalError(c, SafeErrorMessage(err, "生成 Excel 失败"))
		return
	}

	filename := fmt.Sprintf("ledger_%s.xlsx", p)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) buildWorkbook(ctx context.Context, userID uint, p ledger.Period) (*bytes.Buffer, error) {
	var (
		summary  *ledger.MonthlySummary
		incomes  []models.Income
		expenses []models.Expense
		budgets  []models.MonthlyBudget
	)
	// 合计行与明细来自同一快照
	err := h.svc.ReadTx(ctx, func(tx *ledger.Service) error {
		var err error
		if summary, err = tx.MonthlySummary(ctx, userID, p); err != nil {
			return err
		}
		incomes, err = allPages(func(page int) (*ledger.Page[models.Income], error) {
			return tx.ListIncomes(ctx, userID, ledger.ListFilter{Period: &p, Page: page, PageSize: exportPageSize})
		})
		if err != nil {
			return err
		}
		expenses, err = allPages(func(page int) (*ledger.Page[models.Expense], error) {
			return tx.ListExpenses(ctx, userID, ledger.ListFilter{Period: &p, Page: page, PageSize: exportPageSize})
		})
		if err != nil {
			return err
		}
		budgets, err = tx.ListBudgets(ctx, userID, &p)
		return err
	})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	f.SetSheetName("Sheet1", "Summary")
	w := sheetWriter{f: f, styles: styles}

	w.table("Summary", []string{"项目", "金额"}, [][]interface{}{
		{"月份", summary.Period},
		{"总收入", summary.Income.InexactFloat64()},
		{"总支出", summary.Expenses.InexactFloat64()},
		{"预算合计", summary.Budgets.InexactFloat64()},
		{"结余", summary.Remaining.InexactFloat64()},
		{"未分配预算", summary.Unallocated.InexactFloat64()},
	}, nil)

	incomeRows := make([][]interface{}, 0, len(incomes))
	for _, in := range incomes {
		incomeRows = append(incomeRows, []interface{}{in.ID, in.Date.Format(dateLayout), in.IncomeCategory.Name, in.Amount.InexactFloat64()})
	}
	w.newSheet("Incomes")
	w.table("Incomes", []string{"ID", "日期", "类别", "金额"}, incomeRows, []interface{}{"合计", "", "", summary.Income.InexactFloat64()})

	expenseRows := make([][]interface{}, 0, len(expenses))
	for _, e := range expenses {
		expenseRows = append(expenseRows, []interface{}{e.ID, e.Date.Format(dateLayout), e.Category.Name, e.Description, e.Amount.InexactFloat64()})
	}
	w.newSheet("Expenses")
	w.table("Expenses", []string{"ID", "日期", "类别", "描述", "金额"}, expenseRows, []interface{}{"合计", "", "", "", summary.Expenses.InexactFloat64()})

	budgetRows := make([][]interface{}, 0, len(budgets))
	for _, b := range budgets {
		budgetRows = append(budgetRows, []interface{}{b.ID, b.Category.Name, b.Amount.InexactFloat64()})
	}
	w.newSheet("Budgets")
	w.table("Budgets", []string{"ID", "类别", "金额"}, budgetRows, []interface{}{"合计", "", summary.Budgets.InexactFloat64()})

	if w.err != nil {
		return nil, w.err
	}
	return f.WriteToBuffer()
}

// allPages 依次读取所有分页
func allPages[T any](fetch func(page int) (*ledger.Page[T], error)) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		result, err := fetch(page)
		if err != nil {
			return nil, err
		}
		all = append(all, result.List...)
		if int64(len(all)) >= result.Total || len(result.List) == 0 {
			return all, nil
		}
	}
}

type sheetStyles struct {
	header, data, summary int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	var s sheetStyles
	var err error
	// 表头
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: center,
		Border:    border,
	}); err != nil {
		return s, err
	}
	if s.data, err = f.NewStyle(&excelize.Style{Alignment: center, Border: border}); err != nil {
		return s, err
	}
	// 合计行
	if s.summary, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: center,
		Border:    border,
	}); err != nil {
		return s, err
	}
	return s, nil
}

// sheetWriter 记录第一个错误，后续写入直接跳过
type sheetWriter struct {
	f      *excelize.File
	styles sheetStyles
	err    error
}

func (w *sheetWriter) newSheet(name string) {
	if w.err != nil {
		return
	}
	_, w.err = w.f.NewSheet(name)
}

func (w *sheetWriter) row(sheet string, rowNum int, values []interface{}, style int) {
	if w.err != nil || len(values) == 0 {
		return
	}
	start, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		w.err = err
		return
	}
	end, _ := excelize.CoordinatesToCellName(len(values), rowNum)
	if w.err = w.f.SetSheetRow(sheet, start, &values); w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(sheet, start, end, style)
}

func (w *sheetWriter) table(sheet string, headers []string, rows [][]interface{}, total []interface{}) {
	head := make([]interface{}, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	w.row(sheet, 1, head, w.styles.header)
	for i, r := range rows {
		w.row(sheet, i+2, r, w.styles.data)
	}
	w.row(sheet, len(rows)+2, total, w.styles.summary)

	if w.err == nil {
		last, _ := excelize.ColumnNumberToName(len(headers))
		w.err = w.f.SetColWidth(sheet, "A", last, 16)
	}
}
