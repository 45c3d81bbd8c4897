package controllers

import (
	"net/http"
	"strings"

	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	service services.OrderAdminService
}

func NewOrderController(s services.OrderAdminService) *OrderController {
	return &OrderController{service: s}
}

// GetOrders lists orders newest first. ?q= searches order id, customer name
// and email; ?status= keeps one status.
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	page, limit := parsePaginationParams(c)
	filter := models.OrderFilter{
		Query:  strings.TrimSpace(c.Query("q")),
		Status: models.OrderStatus(c.Query("status")),
		Page:   page,
		Limit:  limit,
	}

	orders, total, svcErr := ctrl.service.ListOrders(c.Request.Context(), filter)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"meta":   paginationMeta(page, limit, total),
	})
}

func (ctrl *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, svcErr := ctrl.service.GetOrder(c.Request.Context(), id)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	order, svcErr := ctrl.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "label": order.Status.Label()})
}

func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if svcErr := ctrl.service.DeleteOrder(c.Request.Context(), id); svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func (ctrl *OrderController) GetDashboard(c *gin.Context) {
	stats, svcErr := ctrl.service.Dashboard(c.Request.Context())
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetStatuses lists the statuses with their labels and allowed next moves.
func (ctrl *OrderController) GetStatuses(c *gin.Context) {
	out := make([]gin.H, 0, 4)
	for _, s := range models.OrderStatuses() {
		out = append(out, gin.H{"value": s, "label": s.Label(), "next": s.Next()})
	}
	c.JSON(http.StatusOK, gin.H{"statuses": out})
}
