package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/pahanaedu/backend/internal/application/billing"
)

// BillHandler handles bill-related API endpoints
type BillHandler struct {
	BaseHandler
	billService *billingapp.BillService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billService *billingapp.BillService) *BillHandler {
	return &BillHandler{
		billService: billService,
	}
}

// RegisterRoutes registers bill routes on the given group
func (h *BillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bills := rg.Group("/bills")
	{
		bills.POST("", h.Create)
		bills.GET("", h.List)
		bills.GET("/:id", h.GetByID)
		bills.GET("/number/:number", h.GetByNumber)
		bills.PUT("/:id", h.Update)
		bills.DELETE("/:id", h.Delete)
	}
}

// Create creates a new bill. Line totals and bill totals are recomputed
// server-side; the bill number is generated when omitted.
func (h *BillHandler) Create(c *gin.Context) {
	var req billingapp.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	bill, err := h.billService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, bill)
}

// GetByID retrieves a bill by its ID
func (h *BillHandler) GetByID(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	bill, err := h.billService.GetByID(c.Request.Context(), billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}

// GetByNumber retrieves a bill by its unique bill number
func (h *BillHandler) GetByNumber(c *gin.Context) {
	billNumber := c.Param("number")

	bill, err := h.billService.GetByNumber(c.Request.Context(), billNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}

// List retrieves bills. Supports filtering by customer_id, status and a
// bill date range (from/to, inclusive).
func (h *BillHandler) List(c *gin.Context) {
	var filter billingapp.BillListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.handleBindError(c, err)
		return
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID format")
			return
		}
		bills, err := h.billService.ListByCustomer(c.Request.Context(), customerID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, bills)
		return
	}

	if status := c.Query("status"); status != "" {
		bills, err := h.billService.ListByStatus(c.Request.Context(), status, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, bills)
		return
	}

	bills, err := h.billService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bills)
}

// Update replaces the mutable parts of a bill. When items are present the
// whole line set is replaced and totals recomputed.
func (h *BillHandler) Update(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	var req billingapp.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	bill, err := h.billService.Update(c.Request.Context(), billID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}

// Delete removes a bill and its lines
func (h *BillHandler) Delete(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	if err := h.billService.Delete(c.Request.Context(), billID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
