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

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name           string `json:"name" binding:"required"`
	Identification string `json:"identification" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Location       string `json:"location"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name           *string `json:"name"`
	Identification *string `json:"identification"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	Location       *string `json:"location"`
	Active         *bool   `json:"active"`
}

// CreateCustomer creates a new customer
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if identification already exists
	var existingCustomer models.Customer
	if err := config.DB.Where("identification = ?", input.Identification).
		First(&existingCustomer).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this identification already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		Name:           input.Name,
		Identification: input.Identification,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		Location:       input.Location,
	}
	customer.Active = true

	if actor := currentActor(c); actor != nil {
		customer.SetCreatedBy(actor.ID)
		customer.SetUpdatedBy(actor.ID)
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers
func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	query := listView(c).Order("name")

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR identification ILIKE ? OR email ILIKE ?", like, like, like)
	}

	if err := query.Scopes(utils.Paginate(c)).Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var customer models.Customer
	if err := listView(c).Preload("Contacts", "active = ?", true).
		First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer. Flipping active from true to
// false behaves exactly like a delete: the full cascade runs.
func UpdateCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	actor := currentActor(c)
	wasActive := customer.Active

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Identification != nil {
		if customer.Identification != *input.Identification {
			var existing models.Customer
			if err := config.DB.Where("identification = ?", *input.Identification).
				First(&existing).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another customer with this identification already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		customer.Identification = *input.Identification
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Location != nil {
		customer.Location = *input.Location
	}

	if actor != nil {
		customer.SetUpdatedBy(actor.ID)
	}

	// Deactivation through a plain update triggers the same cascade as an
	// explicit delete.
	if input.Active != nil && wasActive && !*input.Active {
		if err := config.DB.Omit("active").Save(&customer).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
			return
		}
		if err := services.NewCascadeService(config.DB).DeactivateCustomer(customer.ID, actor); err != nil {
			respondServiceError(c, err)
			return
		}
		customer.Active = false
		c.JSON(http.StatusOK, customer)
		return
	}

	if input.Active != nil {
		customer.Active = *input.Active
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer soft deletes a customer and cascades the deactivation to
// its subscriptions, visits, visit children and contacts.
func DeleteCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.NewCascadeService(config.DB).
		DeactivateCustomer(customerID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// RestoreCustomer reactivates the customer only; descendants deactivated by
// the cascade stay inactive until restored individually.
func RestoreCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.NewCascadeService(config.DB).
		RestoreCustomer(customerID, currentActor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer restored"})
}
