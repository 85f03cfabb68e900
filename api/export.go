package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"sort"
	"time"

	"pocketledger/ledger"
	"pocketledger/middleware"
	"pocketledger/models"
	"pocketledger/report"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	reports *report.Service
}

// NewExportHandler 创建导出处理器
func NewExportHandler(reports *report.Service) *ExportHandler {
	return &ExportHandler{reports: reports}
}

var exportHeaders = []string{"ID", "类型", "金额", "类别", "二级类别", "支付方式", "备注", "交易日期"}

// collect 某月收支记录，type 为空时收入支出都导出；同时返回规范化后的月份用于文件名
func (h *ExportHandler) collect(c *gin.Context) ([]report.TransactionView, string, bool) {
	month := c.Query("month")
	if month == "" {
		BadRequest(c, "请提供月份")
		return nil, "", false
	}
	start, err := ledger.ParseMonth(month, time.UTC)
	if err != nil {
		Fail(c, err, "月份格式错误")
		return nil, "", false
	}
	types := []models.TransactionType{models.TypeIncome, models.TypeExpense}
	if s := c.Query("type"); s != "" {
		typ, ok := parseType(s, "")
		if !ok {
			BadRequest(c, "type 只能是 income 或 expense")
			return nil, "", false
		}
		types = []models.TransactionType{typ}
	}

	userID := middleware.GetCurrentUserID(c)
	var rows []report.TransactionView
	for _, typ := range types {
		list, err := h.reports.GetTransactions(c.Request.Context(), userID, typ, month)
		if err != nil {
			Fail(c, err, "查询数据失败")
			return nil, "", false
		}
		rows = append(rows, list...)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].TransactionDate.Equal(rows[j].TransactionDate) {
			return rows[i].TransactionDate.After(rows[j].TransactionDate)
		}
		return rows[i].ID > rows[j].ID
	})
	return rows, start.Format("2006-01"), true
}

func exportRow(t report.TransactionView) []string {
	return []string{
		fmt.Sprintf("%d", t.ID),
		string(t.Type),
		t.Amount.StringFixed(2),
		t.CategoryName,
		t.SubcategoryName,
		t.PaymentMethodName,
		t.Note,
		t.TransactionDate.Format("2006-01-02"),
	}
}

// ExportCSV 导出某月收支记录为 CSV
// @Summary 导出收支记录
// @Description 导出某月收支记录为 CSV 文件
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param month query string true "月份 (2024-03)"
// @Param type query string false "income 或 expense，为空导出全部"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, monthKey, ok := h.collect(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")
	writer := csv.NewWriter(buf)

	if err := writer.Write(exportHeaders); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}
	for _, t := range rows {
		if err := writer.Write(exportRow(t)); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	filename := fmt.Sprintf("transactions_%s.csv", monthKey)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出某月收支记录为 Excel
// @Summary 导出收支记录为 Excel
// @Description 导出某月收支记录为 xlsx，末行为收入、支出合计
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param month query string true "月份 (2024-03)"
// @Param type query string false "income 或 expense，为空导出全部"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	rows, monthKey, ok := h.collect(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "收支记录"
	f.SetSheetName("Sheet1", sheetName)

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "F", 14)
	f.SetColWidth(sheetName, "G", "G", 30)
	f.SetColWidth(sheetName, "H", "H", 14)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	income, expense := decimal.Zero, decimal.Zero
	for i, t := range rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), string(t.Type))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Amount.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.CategoryName)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.SubcategoryName)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), t.PaymentMethodName)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), t.Note)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), t.TransactionDate.Format("2006-01-02"))
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), dataStyle)

		if t.Type == models.TypeIncome {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}

	// 合计行
	summaryRow := len(rows) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "合计")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), "收入 "+income.StringFixed(2))
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), "支出 "+expense.StringFixed(2))
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("共 %d 条记录", len(rows)))
	f.MergeCell(sheetName, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("H%d", summaryRow))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("H%d", summaryRow), summaryStyle)

	filename := fmt.Sprintf("transactions_%s.xlsx", monthKey)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
}
