package controllers

import (
	"fmt"
	"net/http"

	"fieldops-backend/config"
	"fieldops-backend/models"
	"fieldops-backend/services"
	"fieldops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// currentActor resolves the authenticated user from the request context.
// Returns nil when unauthenticated or the user no longer exists; services
// accept a nil actor and simply skip audit stamping.
func currentActor(c *gin.Context) *models.User {
	userID, exists := c.Get("userId")
	if !exists {
		return nil
	}
	id, err := uuid.Parse(fmt.Sprint(userID))
	if err != nil {
		return nil
	}
	var user models.User
	if err := config.DB.First(&user, "id = ?", id).Error; err != nil {
		return nil
	}
	return &user
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// listView is the default read view: active rows only, unless the caller
// passes ?include_inactive=true.
func listView(c *gin.Context) *gorm.DB {
	db := config.DB
	if c.Query("include_inactive") == "true" {
		return db
	}
	return db.Scopes(models.ActiveOnly)
}

func respondServiceError(c *gin.Context, err error) {
	se, ok := services.AsServiceError(err)
	if !ok {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	status := http.StatusBadRequest
	switch se.Code {
	case services.CodeNotFound:
		status = http.StatusNotFound
	case services.CodeConflict:
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{
		"error": se.Message,
		"code":  se.Code,
		"field": se.Field,
	})
}
