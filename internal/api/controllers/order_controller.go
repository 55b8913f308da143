package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hospilog/internal/models/db_models"
	"hospilog/internal/models/request_models"
	"hospilog/internal/services"
	"hospilog/pkg/utils"
)

type OrderController struct {
	orderService services.OrderServiceInterface
}

func NewOrderController(orderService services.OrderServiceInterface) *OrderController {
	return &OrderController{orderService: orderService}
}

// List godoc
// @Summary List orders
// @Description Suppliers only see orders placed with them.
// @Tags Orders
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /orders/list [get]
func (o *OrderController) List(c *gin.Context) {
	orders, err := o.orderService.List(c.Request.Context(), actorFrom(c), db_models.OrderStatus(c.Query("status")))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, orders, "Orders fetched successfully")
}

// Create godoc
// @Summary Place an order
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body request_models.CreateOrderRequest true "Order payload"
// @Success 201 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /orders/create [post]
func (o *OrderController) Create(c *gin.Context) {
	var req request_models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	order, err := o.orderService.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, order, "Order created")
}

// Update godoc
// @Summary Administrative override of an order
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body request_models.UpdateOrderRequest true "Fields to override"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /orders/update [patch]
func (o *OrderController) Update(c *gin.Context) {
	var req request_models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	order, err := o.orderService.Override(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, order, "Order updated")
}

// Delete godoc
// @Summary Delete an order
// @Tags Orders
// @Param id path string true "Order ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /orders/delete/{id} [delete]
func (o *OrderController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := o.orderService.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Order deleted")
}

// Verify godoc
// @Summary Hospital-side verification (PENDING to VERIFIED)
// @Tags Orders
// @Param id path string true "Order ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /orders/{id}/verify [post]
func (o *OrderController) Verify(c *gin.Context) {
	o.transition(c, o.orderService.Verify, "Order verified")
}

// Confirm godoc
// @Summary Supplier confirmation (VERIFIED to CONFIRMED)
// @Tags Orders
// @Param id path string true "Order ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /orders/{id}/confirm [post]
func (o *OrderController) Confirm(c *gin.Context) {
	o.transition(c, o.orderService.Confirm, "Order confirmed")
}

// Cancel godoc
// @Summary Cancel an order that has not shipped yet
// @Tags Orders
// @Param id path string true "Order ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /orders/{id}/cancel [post]
func (o *OrderController) Cancel(c *gin.Context) {
	o.transition(c, o.orderService.Cancel, "Order cancelled")
}

type orderStep func(ctx context.Context, actor services.Actor, id uuid.UUID) (*db_models.Order, error)

func (o *OrderController) transition(c *gin.Context, step orderStep, message string) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := step(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, order, message)
}
