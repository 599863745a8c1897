package controllers

import (
	"net/http"

	"romi-backend/services"
	"romi-backend/utils"

	"github.com/gin-gonic/gin"
)

type InvoiceController struct {
	InvoiceSvc *services.InvoiceService
}

func NewInvoiceController(svc *services.InvoiceService) *InvoiceController {
	return &InvoiceController{InvoiceSvc: svc}
}

func (ctrl *InvoiceController) GetInvoices(c *gin.Context) {
	invoices, err := ctrl.InvoiceSvc.GetAll(c.Query("type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (ctrl *InvoiceController) GetInvoiceByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	invoice, err := ctrl.InvoiceSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

type RoomInvoiceRequest struct {
	BookingID         uint     `json:"bookingId" binding:"required"`
	Tax               *float64 `json:"tax"`
	Discount          *float64 `json:"discount"`
	RoomServiceCharge *float64 `json:"roomServiceCharge"`
	Notes             string   `json:"notes"`
}

func (ctrl *InvoiceController) CreateRoomInvoice(c *gin.Context) {
	var payload RoomInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "bookingId is required")
		return
	}

	invoice, err := ctrl.InvoiceSvc.CreateRoomInvoice(services.RoomInvoiceInput{
		BookingID:         payload.BookingID,
		Tax:               payload.Tax,
		Discount:          payload.Discount,
		RoomServiceCharge: payload.RoomServiceCharge,
		Notes:             payload.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

type RestaurantBillRequest struct {
	OrderID  uint     `json:"orderId" binding:"required"`
	Tax      *float64 `json:"tax"`
	Discount *float64 `json:"discount"`
	Notes    string   `json:"notes"`
}

func (ctrl *InvoiceController) CreateRestaurantBill(c *gin.Context) {
	var payload RestaurantBillRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "orderId is required")
		return
	}

	invoice, err := ctrl.InvoiceSvc.CreateRestaurantBill(services.RestaurantBillInput{
		OrderID:  payload.OrderID,
		Tax:      payload.Tax,
		Discount: payload.Discount,
		Notes:    payload.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// MarkInvoicePaid flips the paid flag forward; there is no unpay endpoint.
func (ctrl *InvoiceController) MarkInvoicePaid(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	invoice, err := ctrl.InvoiceSvc.MarkPaid(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (ctrl *InvoiceController) UpdateInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload struct {
		IsPaid *bool   `json:"isPaid"`
		Notes  *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	invoice, err := ctrl.InvoiceSvc.Update(id, payload.IsPaid, payload.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}
