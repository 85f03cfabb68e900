package api

import (
	"strings"

	"pocketledger/ledger"
	"pocketledger/middleware"
	"pocketledger/models"
	"pocketledger/report"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler 收支记录处理器
type TransactionHandler struct {
	engine  *ledger.Engine
	reports *report.Service
}

// NewTransactionHandler 创建收支记录处理器
func NewTransactionHandler(engine *ledger.Engine, reports *report.Service) *TransactionHandler {
	return &TransactionHandler{engine: engine, reports: reports}
}

// UpdateTransactionBody 修改收支记录请求
type UpdateTransactionBody struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"25.50"`
	Note   string          `json:"note" example:"晚餐"`
}

// Create 新增收支记录
// @Summary 新增收支记录
// @Description 新增一条收入或支出，同时更新对应支付方式的余额。支出要求余额充足
// @Tags 收支记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ledger.AddTransactionRequest true "收支记录"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 422 {object} Response "余额不足或无余额记录"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req ledger.AddTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.UserID = middleware.GetCurrentUserID(c)
	req.Note = strings.TrimSpace(req.Note)

	t, err := h.engine.AddTransaction(c.Request.Context(), req)
	if err != nil {
		Fail(c, err, "创建失败")
		return
	}
	SuccessWithMessage(c, "创建成功", t)
}

// List 某月收支记录
// @Summary 获取某月收支记录
// @Description 按交易日期倒序返回当前用户某月的收入或支出，附带类别与支付方式名称
// @Tags 收支记录
// @Produce json
// @Security BearerAuth
// @Param type query string false "income 或 expense" default(expense)
// @Param month query string true "月份 (2024-03)"
// @Success 200 {object} Response{data=[]report.TransactionView} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	typ, ok := parseType(c.Query("type"), models.TypeExpense)
	if !ok {
		BadRequest(c, "type 只能是 income 或 expense")
		return
	}
	list, err := h.reports.GetTransactions(c.Request.Context(), middleware.GetCurrentUserID(c), typ, c.Query("month"))
	if err != nil {
		Fail(c, err, "查询失败")
		return
	}
	Success(c, list)
}

// Update 修改收支记录的金额和备注
// @Summary 修改收支记录
// @Description 只允许修改金额和备注，余额按新旧金额的差额调整
// @Tags 收支记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Param request body UpdateTransactionBody true "修改内容"
// @Success 200 {object} Response{data=models.Transaction} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Failure 422 {object} Response "余额不足"
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		BadRequest(c, "无效的ID")
		return
	}
	var body UpdateTransactionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	t, err := h.engine.UpdateTransaction(c.Request.Context(), ledger.UpdateTransactionRequest{
		TransactionID: id,
		UserID:        middleware.GetCurrentUserID(c),
		Amount:        body.Amount,
		Note:          strings.TrimSpace(body.Note),
	})
	if err != nil {
		Fail(c, err, "更新失败")
		return
	}
	SuccessWithMessage(c, "更新成功", t)
}

// Delete 删除收支记录
// @Summary 删除收支记录
// @Description 删除记录并回冲其对余额的影响
// @Tags 收支记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Param payment_method_id query int false "支付方式ID，传入时须与记录一致"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		BadRequest(c, "无效的ID")
		return
	}
	req := ledger.DeleteTransactionRequest{
		TransactionID: id,
		UserID:        middleware.GetCurrentUserID(c),
	}
	if s := c.Query("payment_method_id"); s != "" {
		methodID, ok := parseID(s)
		if !ok {
			BadRequest(c, "无效的支付方式ID")
			return
		}
		req.PaymentMethodID = methodID
	}

	if err := h.engine.DeleteTransaction(c.Request.Context(), req); err != nil {
		Fail(c, err, "删除失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
