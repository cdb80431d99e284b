package controllers

import (
	"errors"
	"net/http"
	"time"

	"fieldops-backend/config"
	"fieldops-backend/models"
	"fieldops-backend/services"
	"fieldops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateEvidenceInput struct {
	VisitID     uuid.UUID `json:"visitId" binding:"required"`
	FileURL     string    `json:"fileUrl"`
	Description string    `json:"description"`
}

type UpdateEvidenceInput struct {
	FileURL     *string `json:"fileUrl"`
	Description *string `json:"description"`
}

func createEvidenceRecord(c *gin.Context, visitID uuid.UUID, fileURL, description string) {
	var visit models.Visit
	if err := config.DB.First(&visit, "id = ?", visitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	evidence := models.Evidence{
		VisitID:     visitID,
		FileURL:     fileURL,
		Description: description,
		UploadedAt:  time.Now(),
	}
	evidence.Active = true

	if actor := currentActor(c); actor != nil {
		evidence.SetCreatedBy(actor.ID)
		evidence.SetUpdatedBy(actor.ID)
	}

	if err := config.DB.Create(&evidence).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create evidence")
		return
	}

	c.JSON(http.StatusCreated, evidence)
}

// CreateEvidence records an evidence upload for a visit
func CreateEvidence(c *gin.Context) {
	var input CreateEvidenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	createEvidenceRecord(c, input.VisitID, input.FileURL, input.Description)
}

// CreateEvidenceByVisit records evidence for the visit in the path
func CreateEvidenceByVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		FileURL     string `json:"fileUrl"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	createEvidenceRecord(c, visitID, input.FileURL, input.Description)
}

// GetEvidences retrieves all evidence records
func GetEvidences(c *gin.Context) {
	var evidences []models.Evidence
	query := listView(c).Order("uploaded_at DESC").Order("id")

	if visitID := c.Query("visit_id"); visitID != "" {
		query = query.Where("visit_id = ?", visitID)
	}

	if err := query.Scopes(utils.Paginate(c)).Find(&evidences).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve evidence")
		return
	}

	c.JSON(http.StatusOK, evidences)
}

// GetEvidence retrieves a specific evidence record by ID
func GetEvidence(c *gin.Context) {
	evidenceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var evidence models.Evidence
	if err := listView(c).First(&evidence, "id = ?", evidenceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Evidence not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, evidence)
}

// GetEvidenceByVisit lists a visit's active evidence
func GetEvidenceByVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var evidences []models.Evidence
	if err := config.DB.Scopes(models.ActiveOnly).
		Where("visit_id = ?", visitID).
		Order("uploaded_at DESC").Order("id").
		Scopes(utils.Paginate(c)).
		Find(&evidences).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve evidence")
		return
	}

	c.JSON(http.StatusOK, evidences)
}

// GetEvidenceByCustomer lists evidence across a customer's visits
func GetEvidenceByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var evidences []models.Evidence
	if err := config.DB.Scopes(models.ActiveOnly).
		Where("visit_id IN (?)", visitIDsForCustomer(customerID)).
		Order("uploaded_at DESC").Order("id").
		Scopes(utils.Paginate(c)).
		Find(&evidences).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve evidence")
		return
	}

	c.JSON(http.StatusOK, evidences)
}

// UpdateEvidence updates an existing evidence record
func UpdateEvidence(c *gin.Context) {
	evidenceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateEvidenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var evidence models.Evidence
	if err := config.DB.First(&evidence, "id = ?", evidenceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Evidence not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.FileURL != nil {
		evidence.FileURL = *input.FileURL
	}
	if input.Description != nil {
		evidence.Description = *input.Description
	}

	if actor := currentActor(c); actor != nil {
		evidence.SetUpdatedBy(actor.ID)
	}

	if err := config.DB.Save(&evidence).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update evidence")
		return
	}

	c.JSON(http.StatusOK, evidence)
}

// DeleteEvidence soft deletes an evidence record
func DeleteEvidence(c *gin.Context) {
	evidenceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Deactivate(config.DB, &models.Evidence{}, "evidence", evidenceID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Evidence deleted successfully"})
}

// RestoreEvidence reactivates a soft-deleted evidence record
func RestoreEvidence(c *gin.Context) {
	evidenceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Activate(config.DB, &models.Evidence{}, "evidence", evidenceID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Evidence restored"})
}
