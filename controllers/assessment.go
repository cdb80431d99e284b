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

type AssessmentInput struct {
	Rating  int    `json:"rating" binding:"min=0"`
	Comment string `json:"comment"`
}

type UpdateAssessmentInput struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// GetAssessments retrieves all assessments
func GetAssessments(c *gin.Context) {
	var assessments []models.Assessment
	query := listView(c).Order("created_at DESC").Order("id")

	if visitID := c.Query("visit_id"); visitID != "" {
		query = query.Where("visit_id = ?", visitID)
	}

	if err := query.Scopes(utils.Paginate(c)).Find(&assessments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve assessments")
		return
	}

	c.JSON(http.StatusOK, assessments)
}

// GetAssessment retrieves a specific assessment by ID
func GetAssessment(c *gin.Context) {
	assessmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var assessment models.Assessment
	if err := listView(c).First(&assessment, "id = ?", assessmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Assessment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// GetAssessmentByVisit returns the visit's assessment, or null when none is
// active
func GetAssessmentByVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var assessment models.Assessment
	err := config.DB.Scopes(models.ActiveOnly).
		First(&assessment, "visit_id = ?", visitID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// UpsertAssessmentByVisit creates the visit's assessment or updates the
// existing one, reviving it if it was soft-deleted.
func UpsertAssessmentByVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input AssessmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var visit models.Visit
	if err := config.DB.First(&visit, "id = ?", visitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	actor := currentActor(c)

	var assessment models.Assessment
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&assessment, "visit_id = ?", visitID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			assessment = models.Assessment{
				VisitID: visitID,
				Rating:  input.Rating,
				Comment: input.Comment,
			}
			assessment.Active = true
			if actor != nil {
				assessment.SetCreatedBy(actor.ID)
				assessment.SetUpdatedBy(actor.ID)
			}
			return tx.Create(&assessment).Error
		}
		if err != nil {
			return err
		}

		assessment.Active = true
		assessment.Rating = input.Rating
		assessment.Comment = input.Comment
		if actor != nil {
			assessment.SetUpdatedBy(actor.ID)
		}
		return tx.Save(&assessment).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save assessment")
		return
	}

	c.JSON(http.StatusCreated, assessment)
}

// GetAssessmentsByCustomer lists assessments across a customer's visits
func GetAssessmentsByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var assessments []models.Assessment
	if err := config.DB.Scopes(models.ActiveOnly).
		Where("visit_id IN (?)", visitIDsForCustomer(customerID)).
		Order("created_at DESC").Order("id").
		Scopes(utils.Paginate(c)).
		Find(&assessments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve assessments")
		return
	}

	c.JSON(http.StatusOK, assessments)
}

// UpdateAssessment updates an existing assessment
func UpdateAssessment(c *gin.Context) {
	assessmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateAssessmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var assessment models.Assessment
	if err := config.DB.First(&assessment, "id = ?", assessmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Assessment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Rating != nil {
		if *input.Rating < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Rating cannot be negative")
			return
		}
		assessment.Rating = *input.Rating
	}
	if input.Comment != nil {
		assessment.Comment = *input.Comment
	}

	if actor := currentActor(c); actor != nil {
		assessment.SetUpdatedBy(actor.ID)
	}

	if err := config.DB.Save(&assessment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update assessment")
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// DeleteAssessment soft deletes an assessment
func DeleteAssessment(c *gin.Context) {
	assessmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Deactivate(config.DB, &models.Assessment{}, "assessment", assessmentID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assessment deleted successfully"})
}

// RestoreAssessment reactivates a soft-deleted assessment
func RestoreAssessment(c *gin.Context) {
	assessmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Activate(config.DB, &models.Assessment{}, "assessment", assessmentID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assessment restored"})
}

// visitIDsForCustomer builds the subquery selecting all visit IDs reachable
// from a customer's subscriptions.
func visitIDsForCustomer(customerID uuid.UUID) *gorm.DB {
	subIDs := config.DB.Model(&models.PlanSubscription{}).
		Select("id").Where("customer_id = ?", customerID)
	return config.DB.Model(&models.Visit{}).
		Select("id").Where("subscription_id IN (?)", subIDs)
}
