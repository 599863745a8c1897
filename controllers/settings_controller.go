package controllers

import (
	"net/http"

	"romi-backend/config"
	"romi-backend/models"
	"romi-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetHotelSettings returns the single hotel profile row.
func GetHotelSettings(c *gin.Context) {
	var setting models.HotelSetting
	if err := config.DB.First(&setting).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "hotel settings not found")
		return
	}
	c.JSON(http.StatusOK, setting)
}

func UpdateHotelSettings(c *gin.Context) {
	var payload struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
		Email   *string `json:"email"`
		Website *string `json:"website"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	var setting models.HotelSetting
	if err := config.DB.First(&setting).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "hotel settings not found")
		return
	}

	fields := map[string]interface{}{}
	if payload.Name != nil {
		fields["name"] = *payload.Name
	}
	if payload.Address != nil {
		fields["address"] = *payload.Address
	}
	if payload.Phone != nil {
		fields["phone"] = *payload.Phone
	}
	if payload.Email != nil {
		fields["email"] = *payload.Email
	}
	if payload.Website != nil {
		fields["website"] = *payload.Website
	}

	if len(fields) > 0 {
		if err := config.DB.Model(&setting).Updates(fields).Error; err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to update hotel settings")
			return
		}
	}
	c.JSON(http.StatusOK, setting)
}
