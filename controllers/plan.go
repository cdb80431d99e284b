package controllers

import (
	"errors"
	"net/http"

	"fieldops-backend/config"
	"fieldops-backend/models"
	"fieldops-backend/services"
	"fieldops-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreatePlanInput defines the expected JSON structure for creating a plan
type CreatePlanInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	Periodicity string  `json:"periodicity" binding:"required,oneof=monthly bimonthly quarterly semiannual annual"`
}

// UpdatePlanInput defines the expected JSON structure for updating a plan
type UpdatePlanInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Periodicity *string  `json:"periodicity"`
	Active      *bool    `json:"active"`
}

// CreatePlan creates a new maintenance plan
func CreatePlan(c *gin.Context) {
	var input CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	plan := models.Plan{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Periodicity: input.Periodicity,
	}
	plan.Active = true

	if actor := currentActor(c); actor != nil {
		plan.SetCreatedBy(actor.ID)
		plan.SetUpdatedBy(actor.ID)
	}

	if err := config.DB.Create(&plan).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create plan")
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// GetPlans retrieves all plans with their tasks
func GetPlans(c *gin.Context) {
	var plans []models.Plan
	query := listView(c).Preload("Tasks", "active = ?", true).Order("name")

	if periodicity := c.Query("periodicity"); periodicity != "" {
		query = query.Where("periodicity = ?", periodicity)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	if err := query.Scopes(utils.Paginate(c)).Find(&plans).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve plans")
		return
	}

	c.JSON(http.StatusOK, plans)
}

// GetPlan retrieves a specific plan by ID
func GetPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var plan models.Plan
	if err := listView(c).Preload("Tasks", "active = ?", true).
		First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Plan not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// UpdatePlan updates an existing plan
func UpdatePlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var plan models.Plan
	if err := config.DB.First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Plan not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		plan.Name = *input.Name
	}
	if input.Description != nil {
		plan.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Price cannot be negative")
			return
		}
		plan.Price = *input.Price
	}
	if input.Periodicity != nil {
		if !models.ValidPeriodicity(*input.Periodicity) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid periodicity")
			return
		}
		plan.Periodicity = *input.Periodicity
	}
	if input.Active != nil {
		plan.Active = *input.Active
	}

	if actor := currentActor(c); actor != nil {
		plan.SetUpdatedBy(actor.ID)
	}

	if err := config.DB.Save(&plan).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeletePlan soft deletes a plan unless subscriptions still reference it
func DeletePlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.NewPlanService(config.DB).DeletePlan(planID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted successfully"})
}

// RestorePlan reactivates a soft-deleted plan
func RestorePlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Activate(config.DB, &models.Plan{}, "plan", planID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan restored"})
}
