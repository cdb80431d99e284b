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

type CreateContactInput struct {
	CustomerID uuid.UUID `json:"customerId" binding:"required"`
	Name       string    `json:"name" binding:"required"`
	Email      string    `json:"email" binding:"omitempty,email"`
	Phone      string    `json:"phone"`
	IsPrimary  bool      `json:"isPrimary"`
}

type UpdateContactInput struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	IsPrimary *bool   `json:"isPrimary"`
}

// CreateContact creates a contact for a customer. Creating it as primary
// demotes the customer's other contacts.
func CreateContact(c *gin.Context) {
	var input CreateContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	contact := models.CustomerContact{
		CustomerID: input.CustomerID,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		IsPrimary:  input.IsPrimary,
	}

	if err := services.NewContactService(config.DB).Create(&contact, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// GetContacts retrieves all contacts
func GetContacts(c *gin.Context) {
	var contacts []models.CustomerContact
	query := listView(c).Order("name")

	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	if err := query.Scopes(utils.Paginate(c)).Find(&contacts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contacts")
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// GetContact retrieves a specific contact by ID
func GetContact(c *gin.Context) {
	contactID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var contact models.CustomerContact
	if err := listView(c).First(&contact, "id = ?", contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contact not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, contact)
}

// GetContactsByCustomer lists a customer's active contacts
func GetContactsByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var contacts []models.CustomerContact
	if err := config.DB.Scopes(models.ActiveOnly).
		Where("customer_id = ?", customerID).
		Order("name").
		Scopes(utils.Paginate(c)).
		Find(&contacts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contacts")
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// UpdateContact updates an existing contact
func UpdateContact(c *gin.Context) {
	contactID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var contact models.CustomerContact
	if err := config.DB.First(&contact, "id = ?", contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contact not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		contact.Name = *input.Name
	}
	if input.Email != nil {
		contact.Email = *input.Email
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		contact.Phone = *input.Phone
	}
	if input.IsPrimary != nil {
		contact.IsPrimary = *input.IsPrimary
	}

	if err := services.NewContactService(config.DB).Save(&contact, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// SetPrimaryContact marks this contact as primary and demotes the rest of
// the customer's contacts in one transaction.
func SetPrimaryContact(c *gin.Context) {
	contactID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	contact, err := services.NewContactService(config.DB).SetPrimary(contactID, currentActor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// DeleteContact soft deletes a contact
func DeleteContact(c *gin.Context) {
	contactID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Deactivate(config.DB, &models.CustomerContact{}, "contact", contactID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}

// RestoreContact reactivates a soft-deleted contact
func RestoreContact(c *gin.Context) {
	contactID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.Activate(config.DB, &models.CustomerContact{}, "contact", contactID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact restored"})
}
