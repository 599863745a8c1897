package controllers

import (
	"net/http"

	"romi-backend/services"
	"romi-backend/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	OrderSvc *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{OrderSvc: svc}
}

type CreateOrderRequest struct {
	CustomerName  string                    `json:"customerName" binding:"required"`
	CustomerPhone string                    `json:"customerPhone" binding:"required"`
	Items         []services.OrderItemInput `json:"items" binding:"required"`
	OrderType     string                    `json:"orderType"`
	Notes         string                    `json:"notes"`
}

func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var payload CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	order, err := ctrl.OrderSvc.Create(services.CreateOrderInput{
		CustomerName:  payload.CustomerName,
		CustomerPhone: payload.CustomerPhone,
		Items:         payload.Items,
		OrderType:     payload.OrderType,
		Notes:         payload.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (ctrl *OrderController) GetOrders(c *gin.Context) {
	orders, err := ctrl.OrderSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (ctrl *OrderController) GetOrdersByPhone(c *gin.Context) {
	orders, err := ctrl.OrderSvc.GetByPhone(c.Param("phone"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
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

	order, err := ctrl.OrderSvc.UpdateStatus(id, payload.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
