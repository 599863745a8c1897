package controllers

import (
	"net/http"

	"romi-backend/services"
	"romi-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

type CreateBookingRequest struct {
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerPhone string `json:"customerPhone" binding:"required"`
	CustomerEmail string `json:"customerEmail"`

	// Single-room payloads still arrive from older clients; roomId folds
	// into the list.
	RoomID  uint   `json:"roomId"`
	RoomIDs []uint `json:"roomIds"`

	CheckIn  string `json:"checkIn" binding:"required"`
	CheckOut string `json:"checkOut" binding:"required"`

	Adults   int `json:"adults"`
	Children int `json:"children"`

	IncludeRoomService bool   `json:"includeRoomService"`
	Package            string `json:"package"`
	SpecialRequests    string `json:"specialRequests"`
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload CreateBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	roomIDs := payload.RoomIDs
	if payload.RoomID != 0 {
		roomIDs = append([]uint{payload.RoomID}, roomIDs...)
	}

	checkIn, err := parseDate(payload.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkIn date")
		return
	}
	checkOut, err := parseDate(payload.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkOut date")
		return
	}

	booking, err := ctrl.BookingSvc.Create(services.CreateBookingInput{
		CustomerName:       payload.CustomerName,
		CustomerPhone:      payload.CustomerPhone,
		CustomerEmail:      payload.CustomerEmail,
		RoomIDs:            roomIDs,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		Adults:             payload.Adults,
		Children:           payload.Children,
		IncludeRoomService: payload.IncludeRoomService,
		Package:            payload.Package,
		SpecialRequests:    payload.SpecialRequests,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) GetBookingsByPhone(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.GetByPhone(c.Param("phone"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) GetBookingByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (ctrl *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}

	booking, err := ctrl.BookingSvc.UpdateStatus(id, payload.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateBooking applies staff edits. The total is never recalculated here;
// it only changes when the payload carries totalAmount explicitly.
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload struct {
		CustomerName       *string  `json:"customerName"`
		CustomerPhone      *string  `json:"customerPhone"`
		CustomerEmail      *string  `json:"customerEmail"`
		CheckIn            *string  `json:"checkIn"`
		CheckOut           *string  `json:"checkOut"`
		Adults             *int     `json:"adults"`
		Children           *int     `json:"children"`
		IncludeRoomService *bool    `json:"includeRoomService"`
		Package            *string  `json:"package"`
		SpecialRequests    *string  `json:"specialRequests"`
		TotalAmount        *float64 `json:"totalAmount"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	fields := map[string]interface{}{}
	if payload.CustomerName != nil {
		fields["customer_name"] = *payload.CustomerName
	}
	if payload.CustomerPhone != nil {
		fields["customer_phone"] = *payload.CustomerPhone
	}
	if payload.CustomerEmail != nil {
		fields["customer_email"] = *payload.CustomerEmail
	}
	if payload.CheckIn != nil {
		t, err := parseDate(*payload.CheckIn)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid checkIn date")
			return
		}
		fields["check_in"] = t
	}
	if payload.CheckOut != nil {
		t, err := parseDate(*payload.CheckOut)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid checkOut date")
			return
		}
		fields["check_out"] = t
	}
	if payload.Adults != nil {
		fields["adults"] = *payload.Adults
	}
	if payload.Children != nil {
		fields["children"] = *payload.Children
	}
	if payload.IncludeRoomService != nil {
		fields["include_room_service"] = *payload.IncludeRoomService
	}
	if payload.Package != nil {
		fields["package"] = *payload.Package
	}
	if payload.SpecialRequests != nil {
		fields["special_requests"] = *payload.SpecialRequests
	}
	if payload.TotalAmount != nil {
		fields["total_amount"] = *payload.TotalAmount
	}

	booking, err := ctrl.BookingSvc.Update(id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
