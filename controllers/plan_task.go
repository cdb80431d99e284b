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

type CreatePlanTaskInput struct {
	PlanID      uuid.UUID `json:"planId" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Order       int       `json:"order" binding:"min=0"`
}

type UpdatePlanTaskInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

// CreatePlanTask adds a task to a plan. Blocked when the plan is inactive.
func CreatePlanTask(c *gin.Context) {
	var input CreatePlanTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	task := models.PlanTask{
		PlanID:      input.PlanID,
		Name:        input.Name,
		Description: input.Description,
		Order:       input.Order,
	}

	if err := services.NewPlanService(config.DB).CreateTask(&task, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetPlanTasks retrieves all plan tasks
func GetPlanTasks(c *gin.Context) {
	var tasks []models.PlanTask
	query := listView(c).Order("plan_id").Order(`"order"`)

	if planID := c.Query("plan_id"); planID != "" {
		query = query.Where("plan_id = ?", planID)
	}

	if err := query.Scopes(utils.Paginate(c)).Find(&tasks).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve plan tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetPlanTask retrieves a specific plan task by ID
func GetPlanTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var task models.PlanTask
	if err := listView(c).First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Plan task not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// GetTasksByPlan lists a plan's active tasks ordered by position
func GetTasksByPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var tasks []models.PlanTask
	if err := config.DB.Scopes(models.ActiveOnly).
		Where("plan_id = ?", planID).
		Order(`"order"`).
		Scopes(utils.Paginate(c)).
		Find(&tasks).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve plan tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdatePlanTask updates an existing plan task. Blocked when the parent plan
// is inactive.
func UpdatePlanTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdatePlanTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var task models.PlanTask
	if err := config.DB.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Plan task not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		task.Name = *input.Name
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Order != nil {
		task.Order = *input.Order
	}

	if err := services.NewPlanService(config.DB).SaveTask(&task, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeletePlanTask soft deletes a plan task
func DeletePlanTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Deactivate(config.DB, &models.PlanTask{}, "plan task", taskID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan task deleted successfully"})
}

// RestorePlanTask reactivates a soft-deleted plan task
func RestorePlanTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Activate(config.DB, &models.PlanTask{}, "plan task", taskID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan task restored"})
}
