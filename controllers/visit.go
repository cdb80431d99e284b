package controllers

import (
	"errors"
	"io"
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

type CreateVisitInput struct {
	SubscriptionID uuid.UUID  `json:"subscriptionId" binding:"required"`
	UserID         uuid.UUID  `json:"userId" binding:"required"`
	Start          time.Time  `json:"start" binding:"required"`
	End            *time.Time `json:"end"`
	Status         string     `json:"status" binding:"omitempty,oneof=scheduled in_progress completed canceled"`
	SiteAddress    string     `json:"siteAddress"`
	Notes          string     `json:"notes"`
}

type UpdateVisitInput struct {
	SubscriptionID *uuid.UUID `json:"subscriptionId"`
	UserID         *uuid.UUID `json:"userId"`
	Start          *time.Time `json:"start"`
	End            *time.Time `json:"end"`
	Status         *string    `json:"status"`
	SiteAddress    *string    `json:"siteAddress"`
	Notes          *string    `json:"notes"`
}

type CancelVisitInput struct {
	CancelReason string `json:"cancelReason"`
}

func visitService() *services.VisitService {
	return services.NewVisitService(config.DB, services.NewNotificationService(config.DB))
}

// CreateVisit schedules a visit against a subscription
func CreateVisit(c *gin.Context) {
	var input CreateVisitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	visit := models.Visit{
		SubscriptionID: input.SubscriptionID,
		UserID:         input.UserID,
		Start:          input.Start,
		End:            input.End,
		Status:         input.Status,
		SiteAddress:    input.SiteAddress,
		Notes:          input.Notes,
	}

	if err := visitService().Create(&visit, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, visit)
}

// GetVisits retrieves all visits
func GetVisits(c *gin.Context) {
	var visits []models.Visit
	query := listView(c).Preload("Subscription").Preload("User").
		Order("start DESC").Order("id")

	if subID := c.Query("subscription"); subID != "" {
		query = query.Where("subscription_id = ?", subID)
	}
	if userID := c.Query("user"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Scopes(utils.Paginate(c)).Find(&visits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve visits")
		return
	}

	c.JSON(http.StatusOK, visits)
}

// GetVisit retrieves a specific visit with its children
func GetVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var visit models.Visit
	if err := listView(c).
		Preload("Subscription").Preload("User").
		Preload("Assessment", "active = ?", true).
		Preload("Evidences", "active = ?", true).
		Preload("TasksCompleted", "active = ?", true).
		Preload("MaterialsUsed", "active = ?", true).
		First(&visit, "id = ?", visitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, visit)
}

// GetVisitsBySubscription lists a subscription's active visits
func GetVisitsBySubscription(c *gin.Context) {
	subID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var sub models.PlanSubscription
	if err := config.DB.First(&sub, "id = ?", subID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Subscription not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var visits []models.Visit
	if err := config.DB.Scopes(models.ActiveOnly).
		Where("subscription_id = ?", subID).
		Preload("User").
		Order("start DESC").Order("id").
		Scopes(utils.Paginate(c)).
		Find(&visits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve visits")
		return
	}

	c.JSON(http.StatusOK, visits)
}

// GetVisitsByUser lists a technician's active visits
func GetVisitsByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	query := config.DB.Scopes(models.ActiveOnly).
		Where("user_id = ?", userID).
		Preload("Subscription").
		Order("start DESC").Order("id")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var visits []models.Visit
	if err := query.Scopes(utils.Paginate(c)).Find(&visits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve visits")
		return
	}

	c.JSON(http.StatusOK, visits)
}

// GetVisitsByCustomer lists all active visits across a customer's subscriptions
func GetVisitsByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	query := config.DB.Scopes(models.ActiveOnly).
		Where("subscription_id IN (?)",
			config.DB.Model(&models.PlanSubscription{}).Select("id").Where("customer_id = ?", customerID)).
		Preload("Subscription").Preload("User").
		Order("start DESC").Order("id")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var visits []models.Visit
	if err := query.Scopes(utils.Paginate(c)).Find(&visits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve visits")
		return
	}

	c.JSON(http.StatusOK, visits)
}

// UpdateVisit updates an existing visit. Moving status into completed fires
// the completion notification exactly once.
func UpdateVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateVisitInput
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

	prevStatus := visit.Status

	if input.SubscriptionID != nil {
		visit.SubscriptionID = *input.SubscriptionID
	}
	if input.UserID != nil {
		visit.UserID = *input.UserID
	}
	if input.Start != nil {
		visit.Start = *input.Start
	}
	if input.End != nil {
		visit.End = input.End
	}
	if input.Status != nil {
		visit.Status = *input.Status
	}
	if input.SiteAddress != nil {
		visit.SiteAddress = *input.SiteAddress
	}
	if input.Notes != nil {
		visit.Notes = *input.Notes
	}

	if err := visitService().Save(&visit, prevStatus, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, visit)
}

// StartVisit moves a visit into in_progress
func StartVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	visit, err := visitService().Start(visitID, currentActor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, visit)
}

// CompleteVisit closes a visit and notifies the customer
func CompleteVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	visit, err := visitService().Complete(visitID, currentActor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, visit)
}

// CancelVisit cancels a visit, storing the supplied reason
func CancelVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input CancelVisitInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	visit, err := visitService().Cancel(visitID, input.CancelReason, currentActor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, visit)
}

// ReopenVisit resets a canceled or completed visit back to scheduled
func ReopenVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	visit, err := visitService().Reopen(visitID, currentActor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, visit)
}

// DeleteVisit soft deletes a visit
func DeleteVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Deactivate(config.DB, &models.Visit{}, "visit", visitID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Visit deleted successfully"})
}

// RestoreVisit reactivates a soft-deleted visit
func RestoreVisit(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Activate(config.DB, &models.Visit{}, "visit", visitID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Visit restored"})
}
