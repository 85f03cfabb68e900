package api

import (
	"strconv"

	"pocketledger/ledger"
	"pocketledger/middleware"
	"pocketledger/models"
	"pocketledger/report"

	"github.com/gin-gonic/gin"
)

// ReportHandler 统计报表与钱包余额
type ReportHandler struct {
	engine  *ledger.Engine
	reports *report.Service
}

// NewReportHandler 创建统计处理器
func NewReportHandler(engine *ledger.Engine, reports *report.Service) *ReportHandler {
	return &ReportHandler{engine: engine, reports: reports}
}

// Reports 今天/本周/本月报表
// @Summary 周期报表
// @Description 汇总、类别占比和按天明细，周从周一开始
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param type query string false "income 或 expense" default(expense)
// @Param period query string false "day / week / month" default(month)
// @Success 200 {object} Response{data=report.Report} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/reports [get]
func (h *ReportHandler) Reports(c *gin.Context) {
	typ, ok := parseType(c.Query("type"), models.TypeExpense)
	if !ok {
		BadRequest(c, "type 只能是 income 或 expense")
		return
	}
	period := report.Period(c.DefaultQuery("period", string(report.PeriodMonth)))

	rep, err := h.reports.GetReports(c.Request.Context(), middleware.GetCurrentUserID(c), typ, period)
	if err != nil {
		Fail(c, err, "查询失败")
		return
	}
	Success(c, rep)
}

// CategoryStats 按类别汇总
// @Summary 类别统计
// @Description 当月、当年或全部时间按类别汇总，金额倒序
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param type query string false "income 或 expense" default(expense)
// @Param period query string false "month / year / all" default(month)
// @Success 200 {object} Response{data=[]report.CategoryTotal} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/statistics/categories [get]
func (h *ReportHandler) CategoryStats(c *gin.Context) {
	typ, ok := parseType(c.Query("type"), models.TypeExpense)
	if !ok {
		BadRequest(c, "type 只能是 income 或 expense")
		return
	}
	period := report.Period(c.DefaultQuery("period", string(report.PeriodMonth)))

	list, err := h.reports.GetCategoryStats(c.Request.Context(), middleware.GetCurrentUserID(c), typ, period)
	if err != nil {
		Fail(c, err, "查询失败")
		return
	}
	Success(c, list)
}

// CategoryBreakdown 某月支出类别明细
// @Summary 月度支出类别明细
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param month query string true "月份 (2024-03)"
// @Success 200 {object} Response{data=[]report.CategoryTotal} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/statistics/breakdown [get]
func (h *ReportHandler) CategoryBreakdown(c *gin.Context) {
	list, err := h.reports.GetCategoryBreakdown(c.Request.Context(), middleware.GetCurrentUserID(c), c.Query("month"))
	if err != nil {
		Fail(c, err, "查询失败")
		return
	}
	Success(c, list)
}

// MonthlyTrends 最近几个月的收支趋势
// @Summary 月度趋势
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param months query int false "月数，1-24" default(6)
// @Success 200 {object} Response{data=[]report.MonthlyTrend} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/statistics/trends [get]
func (h *ReportHandler) MonthlyTrends(c *gin.Context) {
	months := 0
	if s := c.Query("months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			BadRequest(c, "months 必须是正整数")
			return
		}
		months = n
	}
	list, err := h.reports.GetMonthlyTrends(c.Request.Context(), middleware.GetCurrentUserID(c), months)
	if err != nil {
		Fail(c, err, "查询失败")
		return
	}
	Success(c, list)
}

// Wallets 各支付方式余额
// @Summary 钱包余额
// @Description 返回全部支付方式及当前用户余额，无记录的为 0
// @Tags 钱包
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]report.WalletView} "获取成功"
// @Router /api/v1/wallets [get]
func (h *ReportHandler) Wallets(c *gin.Context) {
	list, err := h.reports.GetWalletBalances(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		Fail(c, err, "查询失败")
		return
	}
	Success(c, list)
}

// DeleteWallet 删除某支付方式的余额记录
// @Summary 删除钱包余额
// @Description 该支付方式下仍有收支记录时拒绝删除
// @Tags 钱包
// @Produce json
// @Security BearerAuth
// @Param method_id path int true "支付方式ID"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "仍有收支记录"
// @Failure 404 {object} Response "余额记录不存在"
// @Router /api/v1/wallets/{method_id} [delete]
func (h *ReportHandler) DeleteWallet(c *gin.Context) {
	methodID, ok := parseID(c.Param("method_id"))
	if !ok {
		BadRequest(c, "无效的支付方式ID")
		return
	}
	if err := h.engine.DeleteWalletBalance(c.Request.Context(), middleware.GetCurrentUserID(c), methodID); err != nil {
		Fail(c, err, "删除失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
