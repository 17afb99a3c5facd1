package controllers

import (
	"errors"
	"net/http"
	"otticapro-backend/config"
	"otticapro-backend/models"
	"otticapro-backend/services"
	"otticapro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Nome          string  `json:"nome" binding:"required"`
	Cognome       string  `json:"cognome"`
	Phone         string  `json:"phone" binding:"required"`
	Email         *string `json:"email"` // Pointer to allow null
	Note          string  `json:"note"`
	IsShopAccount bool    `json:"isShopAccount"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Nome          *string `json:"nome"`
	Cognome       *string `json:"cognome"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Note          *string `json:"note"`
	IsShopAccount *bool   `json:"isShopAccount"`
	IsActive      *bool   `json:"isActive"`
}

// CreateCustomer creates a new customer
func CreateCustomer(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate phone format
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if phone already exists
	var existingCustomer models.Customer
	if err := config.DB.Where("phone = ?", input.Phone).
		First(&existingCustomer).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	// Create new customer
	customer := models.Customer{
		CreatedByUserID: userUUID,
		Nome:            input.Nome,
		Cognome:         input.Cognome,
		Phone:           input.Phone,
		Note:            input.Note,
		IsShopAccount:   input.IsShopAccount,
		IsActive:        true,
	}

	if input.Email != nil {
		customer.Email = *input.Email
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
	if err := config.DB.Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID, together with the
// recomputed sentiment category
func GetCustomer(c *gin.Context) {
	customerID := c.Param("id")
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":         customer,
		"categoriaCliente": ComputeCustomerCategory(customerUUID),
	})
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
	customerID := c.Param("id")
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Retrieve existing customer
	var customer models.Customer
	if err := config.DB.Where("id = ?", customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Nome != nil {
		customer.Nome = *input.Nome
	}
	if input.Cognome != nil {
		customer.Cognome = *input.Cognome
	}
	if input.Phone != nil {
		// Validate phone format
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}

		// Check if phone is being changed to another existing customer
		if customer.Phone != *input.Phone {
			var existingCustomer models.Customer
			if err := config.DB.Where("phone = ?", *input.Phone).
				First(&existingCustomer).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another customer with this phone number already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Note != nil {
		customer.Note = *input.Note
	}
	if input.IsShopAccount != nil {
		customer.IsShopAccount = *input.IsShopAccount
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer soft deletes a customer
func DeleteCustomer(c *gin.Context) {
	customerID := c.Param("id")
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	result := config.DB.Where("id = ?", customerUUID).
		Delete(&models.Customer{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// ComputeCustomerCategory recomputes the derived sentiment category from the
// customer's most recent worked follow-up call. Nothing is persisted; the
// category is derived fresh on every read.
func ComputeCustomerCategory(customerID uuid.UUID) models.CategoriaCliente {
	var call models.FollowUpCall
	err := config.DB.
		Joins("JOIN orders ON orders.id = follow_up_calls.order_id").
		Where("orders.customer_id = ? AND follow_up_calls.stato <> ?", customerID, models.StatoDaChiamare).
		Order("follow_up_calls.updated_at DESC").
		Preload("Order").
		First(&call).Error
	if err != nil {
		return models.CategoriaNonClassificato
	}

	categorizer := services.NewCategorizer()
	var settings models.ShopSettings
	if err := config.DB.First(&settings).Error; err == nil && settings.SogliaSuperFan > 0 {
		categorizer.SogliaSuperFan = settings.SogliaSuperFan
	}

	return categorizer.Categorize(services.CallOutcome{
		Stato:           call.Stato,
		Soddisfazione:   call.Soddisfazione,
		Note:            call.Note,
		ProblemaRisolto: call.ProblemaRisolto,
	}, call.Order.Totale)
}
