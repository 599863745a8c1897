package controllers

import (
	"net/http"
	"strconv"

	"romi-backend/models"
	"romi-backend/services"
	"romi-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc         *services.RoomService
	AvailabilitySvc *services.AvailabilityService
}

func NewRoomController(roomSvc *services.RoomService, availabilitySvc *services.AvailabilityService) *RoomController {
	return &RoomController{RoomSvc: roomSvc, AvailabilitySvc: availabilitySvc}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoomByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	room, err := ctrl.RoomSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// CheckAvailability handles GET /api/rooms/availability?checkIn=&checkOut=&type=.
// Every room comes back annotated with isAvailable for the range; blocked
// rooms are not filtered out.
func (ctrl *RoomController) CheckAvailability(c *gin.Context) {
	checkInStr := c.Query("checkIn")
	checkOutStr := c.Query("checkOut")
	if checkInStr == "" || checkOutStr == "" {
		utils.JSONError(c, http.StatusBadRequest, "checkIn and checkOut are required")
		return
	}

	checkIn, err := parseDate(checkInStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkIn date")
		return
	}
	checkOut, err := parseDate(checkOutStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkOut date")
		return
	}
	if !checkOut.After(checkIn) {
		utils.JSONError(c, http.StatusBadRequest, "checkOut must be after checkIn")
		return
	}

	rooms, err := ctrl.AvailabilitySvc.CheckAvailability(checkIn, checkOut, c.Query("type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	// The shadowed pointer distinguishes an omitted isAvailable (defaults
	// to true) from an explicit false.
	var payload struct {
		models.Room
		IsAvailable *bool `json:"isAvailable"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	room := payload.Room
	room.IsAvailable = payload.IsAvailable == nil || *payload.IsAvailable

	if err := ctrl.RoomSvc.Create(&room); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload struct {
		Type        *string  `json:"type"`
		Category    *string  `json:"category"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Capacity    *int     `json:"capacity"`
		IsAvailable *bool    `json:"isAvailable"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	fields := map[string]interface{}{}
	if payload.Type != nil {
		fields["type"] = *payload.Type
	}
	if payload.Category != nil {
		fields["category"] = *payload.Category
	}
	if payload.Description != nil {
		fields["description"] = *payload.Description
	}
	if payload.Price != nil {
		fields["price"] = *payload.Price
	}
	if payload.Capacity != nil {
		fields["capacity"] = *payload.Capacity
	}
	if payload.IsAvailable != nil {
		fields["is_available"] = *payload.IsAvailable
	}

	room, err := ctrl.RoomSvc.Update(id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.RoomSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}
