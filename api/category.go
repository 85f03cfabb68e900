package api

import (
	"pocketledger/catalog"
	"pocketledger/models"

	"github.com/gin-gonic/gin"
)

// CatalogHandler 类别与支付方式目录
type CatalogHandler struct {
	catalog *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

// Categories 列出类别
// @Summary 获取类别列表
// @Description 按排序返回类别，可按收支类型过滤
// @Tags 目录
// @Produce json
// @Param type query string false "income 或 expense，为空返回全部"
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/categories [get]
func (h *CatalogHandler) Categories(c *gin.Context) {
	typ, ok := parseType(c.Query("type"), "")
	if !ok {
		BadRequest(c, "type 只能是 income 或 expense")
		return
	}
	list, err := h.catalog.Categories(c.Request.Context(), typ)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}

// Subcategories 列出二级类别
// @Summary 获取二级类别列表
// @Tags 目录
// @Produce json
// @Param category_id query int false "类别ID，为空返回全部"
// @Success 200 {object} Response{data=[]models.Subcategory} "获取成功"
// @Failure 400 {object} Response "无效的类别ID"
// @Router /api/v1/subcategories [get]
func (h *CatalogHandler) Subcategories(c *gin.Context) {
	var categoryID uint
	if s := c.Query("category_id"); s != "" {
		id, ok := parseID(s)
		if !ok {
			BadRequest(c, "无效的类别ID")
			return
		}
		categoryID = id
	}
	list, err := h.catalog.Subcategories(c.Request.Context(), categoryID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	if list == nil {
		list = []models.Subcategory{}
	}
	Success(c, list)
}

// PaymentMethods 列出支付方式
// @Summary 获取支付方式列表
// @Tags 目录
// @Produce json
// @Success 200 {object} Response{data=[]models.PaymentMethod} "获取成功"
// @Router /api/v1/payment-methods [get]
func (h *CatalogHandler) PaymentMethods(c *gin.Context) {
	list, err := h.catalog.PaymentMethods(c.Request.Context())
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}
