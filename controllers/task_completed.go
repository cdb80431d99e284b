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

type CreateTaskCompletedInput struct {
	VisitID     uuid.UUID `json:"visitId" binding:"required"`
	PlanTaskID  uuid.UUID `json:"planTaskId" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Hours       int       `json:"hours" binding:"min=0"`
	Completed   bool      `json:"completed"`
}

type UpdateTaskCompletedInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Hours       *int    `json:"hours"`
	Completed   *bool   `json:"completed"`
}

func createTaskCompletedRecord(c *gin.Context, input CreateTaskCompletedInput) {
	var visit models.Visit
	if err := config.DB.First(&visit, "id = ?", input.VisitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var planTask models.PlanTask
	if err := config.DB.First(&planTask, "id = ?", input.PlanTaskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Plan task not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if !planTask.Active {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "plan task is inactive",
			"code":  services.CodeInvalidReference,
			"field": "planTask",
		})
		return
	}

	task := models.TaskCompleted{
		VisitID:     input.VisitID,
		PlanTaskID:  input.PlanTaskID,
		Name:        input.Name,
		Description: input.Description,
		Hours:       input.Hours,
		Completed:   input.Completed,
	}
	task.Active = true

	if actor := currentActor(c); actor != nil {
		task.SetCreatedBy(actor.ID)
		task.SetUpdatedBy(actor.ID)
	}

	if err := config.DB.Create(&task).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create completed task")
		return
	}

	c.JSON(http.StatusCreated, task)
}

// CreateTaskCompleted records a plan task carried out during a visit. The
// referenced plan task must still be active.
func CreateTaskCompleted(c *gin.Context) {
	var input CreateTaskCompletedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	createTaskCompletedRecord(c, input)
}

// CreateTaskCompletedByVisit records a completed task for the visit in the path
func CreateTaskCompletedByVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		PlanTaskID  uuid.UUID `json:"planTaskId" binding:"required"`
		Name        string    `json:"name" binding:"required"`
		Description string    `json:"description"`
		Hours       int       `json:"hours" binding:"min=0"`
		Completed   bool      `json:"completed"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	createTaskCompletedRecord(c, CreateTaskCompletedInput{
		VisitID:     visitID,
		PlanTaskID:  input.PlanTaskID,
		Name:        input.Name,
		Description: input.Description,
		Hours:       input.Hours,
		Completed:   input.Completed,
	})
}

// GetTasksCompleted retrieves all completed-task records
func GetTasksCompleted(c *gin.Context) {
	var tasks []models.TaskCompleted
	query := listView(c).Order("id")

	if visitID := c.Query("visit_id"); visitID != "" {
		query = query.Where("visit_id = ?", visitID)
	}
	if completed := c.Query("completed"); completed != "" {
		query = query.Where("completed = ?", completed == "true")
	}

	if err := query.Scopes(utils.Paginate(c)).Find(&tasks).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve completed tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTaskCompleted retrieves a specific completed-task record by ID
func GetTaskCompleted(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var task models.TaskCompleted
	if err := listView(c).Preload("PlanTask").First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Completed task not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// GetTasksCompletedByVisit lists a visit's active completed tasks
func GetTasksCompletedByVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var tasks []models.TaskCompleted
	if err := config.DB.Scopes(models.ActiveOnly).
		Where("visit_id = ?", visitID).
		Preload("PlanTask").
		Order("id").
		Scopes(utils.Paginate(c)).
		Find(&tasks).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve completed tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTasksCompletedByCustomer lists completed tasks across a customer's visits
func GetTasksCompletedByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var tasks []models.TaskCompleted
	if err := config.DB.Scopes(models.ActiveOnly).
		Where("visit_id IN (?)", visitIDsForCustomer(customerID)).
		Order("id").
		Scopes(utils.Paginate(c)).
		Find(&tasks).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve completed tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdateTaskCompleted updates an existing completed-task record
func UpdateTaskCompleted(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateTaskCompletedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var task models.TaskCompleted
	if err := config.DB.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Completed task not found")
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
	if input.Hours != nil {
		if *input.Hours < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Hours cannot be negative")
			return
		}
		task.Hours = *input.Hours
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	if actor := currentActor(c); actor != nil {
		task.SetUpdatedBy(actor.ID)
	}

	if err := config.DB.Save(&task).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update completed task")
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTaskCompleted soft deletes a completed-task record
func DeleteTaskCompleted(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Deactivate(config.DB, &models.TaskCompleted{}, "completed task", taskID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Completed task deleted successfully"})
}

// RestoreTaskCompleted reactivates a soft-deleted completed-task record
func RestoreTaskCompleted(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Activate(config.DB, &models.TaskCompleted{}, "completed task", taskID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Completed task restored"})
}
