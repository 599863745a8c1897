package controllers

import (
	"net/http"

	"romi-backend/models"
	"romi-backend/services"
	"romi-backend/utils"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	MenuSvc *services.MenuService
}

func NewMenuController(svc *services.MenuService) *MenuController {
	return &MenuController{MenuSvc: svc}
}

func (ctrl *MenuController) GetMenuItems(c *gin.Context) {
	items, err := ctrl.MenuSvc.GetAll(services.MenuFilter{
		Category:      c.Query("category"),
		AvailableOnly: c.Query("available") == "true",
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (ctrl *MenuController) CreateMenuItem(c *gin.Context) {
	// The shadowed pointer distinguishes an omitted isAvailable (defaults
	// to true) from an explicit false.
	var payload struct {
		models.MenuItem
		IsAvailable *bool `json:"isAvailable"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	item := payload.MenuItem
	item.IsAvailable = payload.IsAvailable == nil || *payload.IsAvailable

	if err := ctrl.MenuSvc.Create(&item); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (ctrl *MenuController) UpdateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload struct {
		Name         *string  `json:"name"`
		Category     *string  `json:"category"`
		Description  *string  `json:"description"`
		Price        *float64 `json:"price"`
		Image        *string  `json:"image"`
		IsAvailable  *bool    `json:"isAvailable"`
		IsVegetarian *bool    `json:"isVegetarian"`
		SpiceLevel   *string  `json:"spiceLevel"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	fields := map[string]interface{}{}
	if payload.Name != nil {
		fields["name"] = *payload.Name
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
	if payload.Image != nil {
		fields["image"] = *payload.Image
	}
	if payload.IsAvailable != nil {
		fields["is_available"] = *payload.IsAvailable
	}
	if payload.IsVegetarian != nil {
		fields["is_vegetarian"] = *payload.IsVegetarian
	}
	if payload.SpiceLevel != nil {
		fields["spice_level"] = *payload.SpiceLevel
	}

	item, err := ctrl.MenuSvc.Update(id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ctrl *MenuController) DeleteMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.MenuSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
