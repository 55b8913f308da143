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

type catalogService[T, C, U any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, request C) (*T, error)
	Update(ctx context.Context, request U) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CatalogController serves list/create/update/delete for one supplier-owned
// record type. C and U are the create and patch payloads.
type CatalogController[T, C, U any] struct {
	service catalogService[T, C, U]
	noun    string
}

type (
	ProductController     = CatalogController[db_models.Product, request_models.CreateProductRequest, request_models.UpdateProductRequest]
	VehicleController     = CatalogController[db_models.Vehicle, request_models.CreateVehicleRequest, request_models.UpdateVehicleRequest]
	CertificateController = CatalogController[db_models.Certificate, request_models.CreateCertificateRequest, request_models.UpdateCertificateRequest]
	InvoiceController     = CatalogController[db_models.Invoice, request_models.CreateInvoiceRequest, request_models.UpdateInvoiceRequest]
)

func NewProductController(svc services.ProductServiceInterface) *ProductController {
	return &ProductController{service: svc, noun: "Product"}
}

func NewVehicleController(svc services.VehicleServiceInterface) *VehicleController {
	return &VehicleController{service: svc, noun: "Vehicle"}
}

func NewCertificateController(svc services.CertificateServiceInterface) *CertificateController {
	return &CertificateController{service: svc, noun: "Certificate"}
}

func NewInvoiceController(svc services.InvoiceServiceInterface) *InvoiceController {
	return &InvoiceController{service: svc, noun: "Invoice"}
}

// List godoc
// @Summary List records
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /product/list [get]
// @Router /vehicle/list [get]
// @Router /cert/list [get]
// @Router /invoice/list [get]
func (h *CatalogController[T, C, U]) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, items, h.noun+" list fetched successfully")
}

// Create godoc
// @Summary Create a record owned by an account
// @Description A missing account answers 404 "Account Not Found" and nothing is written.
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 201 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /product/create [post]
// @Router /vehicle/create [post]
// @Router /cert/create [post]
// @Router /invoice/create [post]
func (h *CatalogController[T, C, U]) Create(c *gin.Context) {
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, item, h.noun+" Created")
}

// Update godoc
// @Summary Patch a record; omitted fields keep their value
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /product/update [patch]
// @Router /vehicle/update [patch]
// @Router /cert/update [patch]
// @Router /invoice/update [patch]
func (h *CatalogController[T, C, U]) Update(c *gin.Context) {
	var req U
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, item, h.noun+" Updated")
}

// Delete godoc
// @Summary Delete a record
// @Tags Catalog
// @Param id path string true "Record ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /product/delete/{id} [delete]
// @Router /vehicle/delete/{id} [delete]
// @Router /cert/delete/{id} [delete]
// @Router /invoice/delete/{id} [delete]
func (h *CatalogController[T, C, U]) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, h.noun+" Deleted")
}
