package controllers

import (
	"github.com/gin-gonic/gin"

	"hospilog/internal/models/request_models"
	"hospilog/internal/services"
	"hospilog/pkg/utils"
)

type ShipmentController struct {
	shipmentService services.ShipmentServiceInterface
}

func NewShipmentController(shipmentService services.ShipmentServiceInterface) *ShipmentController {
	return &ShipmentController{shipmentService: shipmentService}
}

// List godoc
// @Summary List shipments with their orders
// @Tags Shipments
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /shipment/list [get]
func (s *ShipmentController) List(c *gin.Context) {
	shipments, err := s.shipmentService.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, shipments, "Shipments fetched successfully")
}

// Create godoc
// @Summary Create a shipment and link confirmed orders to it
// @Description All listed orders are linked or none are.
// @Tags Shipments
// @Accept json
// @Produce json
// @Param request body request_models.CreateShipmentRequest true "Shipment payload"
// @Success 201 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /shipment/create [post]
func (s *ShipmentController) Create(c *gin.Context) {
	var req request_models.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	shipment, err := s.shipmentService.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, shipment, "Shipment created")
}

// Update godoc
// @Summary Patch shipment details
// @Tags Shipments
// @Accept json
// @Produce json
// @Param request body request_models.UpdateShipmentRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /shipment/update [patch]
func (s *ShipmentController) Update(c *gin.Context) {
	var req request_models.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	shipment, err := s.shipmentService.Update(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, shipment, "Shipment updated")
}

// UpdateStatus godoc
// @Summary Move a shipment through its lifecycle
// @Tags Shipments
// @Accept json
// @Produce json
// @Param id path string true "Shipment ID"
// @Param request body request_models.UpdateShipmentStatusRequest true "Target status"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /shipment/{id}/status [patch]
func (s *ShipmentController) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdateShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	shipment, err := s.shipmentService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, shipment, "Shipment status updated")
}

// Delete godoc
// @Summary Delete a shipment with no linked orders
// @Tags Shipments
// @Param id path string true "Shipment ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /shipment/delete/{id} [delete]
func (s *ShipmentController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.shipmentService.Delete(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Shipment deleted")
}
