package controllers

import (
	"errors"
	"net/http"

	"fieldops-backend/config"
	"fieldops-backend/models"
	"fieldops-backend/services"
	"fieldops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateMaterialUsedInput struct {
	VisitID     uuid.UUID `json:"visitId" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Unit        string    `json:"unit"`
	UnitCost    float64   `json:"unitCost" binding:"min=0"`
}

type UpdateMaterialUsedInput struct {
	Description *string  `json:"description"`
	Unit        *string  `json:"unit"`
	UnitCost    *float64 `json:"unitCost"`
}

func createMaterialRecord(c *gin.Context, visitID uuid.UUID, description, unit string, unitCost float64) {
	var visit models.Visit
	if err := config.DB.First(&visit, "id = ?", visitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	material := models.MaterialUsed{
		VisitID:     visitID,
		Description: description,
		Unit:        unit,
		UnitCost:    unitCost,
	}
	material.Active = true

	if actor := currentActor(c); actor != nil {
		material.SetCreatedBy(actor.ID)
		material.SetUpdatedBy(actor.ID)
	}

	if err := config.DB.Create(&material).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create material record")
		return
	}

	c.JSON(http.StatusCreated, material)
}

// CreateMaterialUsed records a material consumed during a visit
func CreateMaterialUsed(c *gin.Context) {
	var input CreateMaterialUsedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	createMaterialRecord(c, input.VisitID, input.Description, input.Unit, input.UnitCost)
}

// CreateMaterialUsedByVisit records a material for the visit in the path
func CreateMaterialUsedByVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Description string  `json:"description" binding:"required"`
		Unit        string  `json:"unit"`
		UnitCost    float64 `json:"unitCost" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	createMaterialRecord(c, visitID, input.Description, input.Unit, input.UnitCost)
}

// GetMaterialsUsed retrieves all material records
func GetMaterialsUsed(c *gin.Context) {
	var materials []models.MaterialUsed
	query := listView(c).Order("id")

	if visitID := c.Query("visit_id"); visitID != "" {
		query = query.Where("visit_id = ?", visitID)
	}

	if err := query.Scopes(utils.Paginate(c)).Find(&materials).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve materials")
		return
	}

	c.JSON(http.StatusOK, materials)
}

// GetMaterialUsed retrieves a specific material record by ID
func GetMaterialUsed(c *gin.Context) {
	materialID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var material models.MaterialUsed
	if err := listView(c).First(&material, "id = ?", materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Material record not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, material)
}

// GetMaterialsUsedByVisit lists a visit's active material records
func GetMaterialsUsedByVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var materials []models.MaterialUsed
	if err := config.DB.Scopes(models.ActiveOnly).
		Where("visit_id = ?", visitID).
		Order("id").
		Scopes(utils.Paginate(c)).
		Find(&materials).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve materials")
		return
	}

	c.JSON(http.StatusOK, materials)
}

// GetMaterialsUsedByCustomer lists materials across a customer's visits
func GetMaterialsUsedByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var materials []models.MaterialUsed
	if err := config.DB.Scopes(models.ActiveOnly).
		Where("visit_id IN (?)", visitIDsForCustomer(customerID)).
		Order("id").
		Scopes(utils.Paginate(c)).
		Find(&materials).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve materials")
		return
	}

	c.JSON(http.StatusOK, materials)
}

// UpdateMaterialUsed updates an existing material record
func UpdateMaterialUsed(c *gin.Context) {
	materialID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateMaterialUsedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var material models.MaterialUsed
	if err := config.DB.First(&material, "id = ?", materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Material record not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Description != nil {
		material.Description = *input.Description
	}
	if input.Unit != nil {
		material.Unit = *input.Unit
	}
	if input.UnitCost != nil {
		if *input.UnitCost < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Unit cost cannot be negative")
			return
		}
		material.UnitCost = *input.UnitCost
	}

	if actor := currentActor(c); actor != nil {
		material.SetUpdatedBy(actor.ID)
	}

	if err := config.DB.Save(&material).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update material record")
		return
	}

	c.JSON(http.StatusOK, material)
}

// DeleteMaterialUsed soft deletes a material record
func DeleteMaterialUsed(c *gin.Context) {
	materialID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Deactivate(config.DB, &models.MaterialUsed{}, "material", materialID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Material record deleted successfully"})
}

// RestoreMaterialUsed reactivates a soft-deleted material record
func RestoreMaterialUsed(c *gin.Context) {
	materialID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Activate(config.DB, &models.MaterialUsed{}, "material", materialID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Material record restored"})
}
