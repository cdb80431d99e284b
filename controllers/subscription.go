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

type CreateSubscriptionInput struct {
	CustomerID uuid.UUID  `json:"customerId" binding:"required"`
	PlanID     uuid.UUID  `json:"planId" binding:"required"`
	StartDate  time.Time  `json:"startDate" binding:"required"`
	EndDate    *time.Time `json:"endDate"`
	Status     string     `json:"status" binding:"required,oneof=active suspended canceled"`
	Notes      string     `json:"notes"`
}

type UpdateSubscriptionInput struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Status    *string    `json:"status"`
	Notes     *string    `json:"notes"`
}

// CreateSubscription subscribes a customer to a plan. When created active,
// any other active subscription of the customer is suspended.
func CreateSubscription(c *gin.Context) {
	var input CreateSubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	sub := models.PlanSubscription{
		CustomerID: input.CustomerID,
		PlanID:     input.PlanID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Status:     input.Status,
		Notes:      input.Notes,
	}

	if err := services.NewSubscriptionService(config.DB).Create(&sub, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// GetSubscriptions retrieves all subscriptions
func GetSubscriptions(c *gin.Context) {
	var subs []models.PlanSubscription
	query := listView(c).Preload("Customer").Preload("Plan").
		Order("start_date DESC").Order("id")

	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if planID := c.Query("plan_id"); planID != "" {
		query = query.Where("plan_id = ?", planID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Scopes(utils.Paginate(c)).Find(&subs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve subscriptions")
		return
	}

	c.JSON(http.StatusOK, subs)
}

// GetSubscription retrieves a specific subscription by ID
func GetSubscription(c *gin.Context) {
	subID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var sub models.PlanSubscription
	if err := listView(c).Preload("Customer").Preload("Plan").
		First(&sub, "id = ?", subID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Subscription not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, sub)
}

// GetSubscriptionsByCustomer lists a customer's active subscriptions
func GetSubscriptionsByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var subs []models.PlanSubscription
	if err := config.DB.Scopes(models.ActiveOnly).
		Where("customer_id = ?", customerID).
		Preload("Plan").
		Order("start_date DESC").Order("id").
		Scopes(utils.Paginate(c)).
		Find(&subs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve subscriptions")
		return
	}

	c.JSON(http.StatusOK, subs)
}

// UpdateSubscription updates an existing subscription
func UpdateSubscription(c *gin.Context) {
	subID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateSubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
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

	if input.StartDate != nil {
		sub.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		sub.EndDate = input.EndDate
	}
	if input.Status != nil {
		sub.Status = *input.Status
	}
	if input.Notes != nil {
		sub.Notes = *input.Notes
	}

	if err := services.NewSubscriptionService(config.DB).Save(&sub, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// DeleteSubscription soft deletes a subscription
func DeleteSubscription(c *gin.Context) {
	subID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Deactivate(config.DB, &models.PlanSubscription{}, "subscription", subID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription deleted successfully"})
}

// RestoreSubscription reactivates a soft-deleted subscription
func RestoreSubscription(c *gin.Context) {
	subID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Activate(config.DB, &models.PlanSubscription{}, "subscription", subID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription restored"})
}
