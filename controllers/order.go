// controllers/order.go
package controllers

import (
	"errors"
	"net/http"

	"otticapro-backend/config"
	"otticapro-backend/models"
	"otticapro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductOrderInput defines the structure for an order sub-item
type ProductOrderInput struct {
	Descrizione string  `json:"descrizione" binding:"required"`
	Prezzo      float64 `json:"prezzo" binding:"min=0"`
}

// LegacyPaymentInput mirrors the pre-plan payment record
type LegacyPaymentInput struct {
	PrezzoFinale  float64 `json:"prezzoFinale" binding:"min=0"`
	Acconto       float64 `json:"acconto" binding:"min=0"`
	ModalitaSaldo string  `json:"modalitaSaldo"`
	Note          string  `json:"note"`
	Saldato       bool    `json:"saldato"`
	DataSaldo     string  `json:"dataSaldo"`
}

// InstallmentInput defines one scheduled partial payment
type InstallmentInput struct {
	Importo float64 `json:"importo" binding:"required,min=0"`
	Pagato  float64 `json:"pagato" binding:"min=0"`
}

// PaymentPlanInput defines the structured payment representation
type PaymentPlanInput struct {
	Totale       float64              `json:"totale" binding:"min=0"`
	Acconto      float64              `json:"acconto" binding:"min=0"`
	Tipo         models.TipoPagamento `json:"tipo" binding:"required,oneof=saldo_unico rate finanziamento nessun_pagamento"`
	Installments []InstallmentInput   `json:"installments"`
}

// CreateOrderInput defines the expected JSON structure for creating an order
type CreateOrderInput struct {
	CustomerID    uuid.UUID             `json:"customerId" binding:"required"`
	Categoria     models.CategoriaBusta `json:"categoria" binding:"required,oneof=occhiale_completo occhiale_vista occhiale_sole lenti_a_contatto lenti_vista altro"`
	Items         []ProductOrderInput   `json:"items" binding:"required,min=1"`
	Note          string                `json:"note"`
	LegacyPayment *LegacyPaymentInput   `json:"legacyPayment"`
	PaymentPlan   *PaymentPlanInput     `json:"paymentPlan"`
}

// UpdateOrderInput defines the expected JSON structure for updating an order
type UpdateOrderInput struct {
	Stato *models.StatoBusta `json:"stato" binding:"omitempty,oneof=nuova in_lavorazione ordinata pronta consegnata_pagata"`
	Note  *string            `json:"note"`
}

// CreateOrder creates a new order envelope with its sub-items and at most
// one payment representation
func CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// A plan and a legacy record are never both authoritative
	if input.LegacyPayment != nil && input.PaymentPlan != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Order cannot carry both a legacy payment and a payment plan")
		return
	}

	// Validate customer exists
	var customer models.Customer
	if err := config.DB.Where("id = ?", input.CustomerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var totale float64 = 0
	var items []models.ProductOrder
	for _, item := range input.Items {
		totale += item.Prezzo
		items = append(items, models.ProductOrder{
			Descrizione: item.Descrizione,
			Prezzo:      item.Prezzo,
		})
	}

	order := models.Order{
		CustomerID:    input.CustomerID,
		Stato:         models.StatoNuova,
		Categoria:     input.Categoria,
		Totale:        totale,
		Note:          input.Note,
		ProductOrders: items,
	}

	if input.LegacyPayment != nil {
		order.LegacyPayment = &models.LegacyPaymentRecord{
			PrezzoFinale:  input.LegacyPayment.PrezzoFinale,
			Acconto:       input.LegacyPayment.Acconto,
			ModalitaSaldo: input.LegacyPayment.ModalitaSaldo,
			Note:          input.LegacyPayment.Note,
			Saldato:       input.LegacyPayment.Saldato,
			DataSaldo:     input.LegacyPayment.DataSaldo,
		}
	}

	if input.PaymentPlan != nil {
		plan := models.PaymentPlan{
			Totale:  input.PaymentPlan.Totale,
			Acconto: input.PaymentPlan.Acconto,
			Tipo:    input.PaymentPlan.Tipo,
		}
		for _, rata := range input.PaymentPlan.Installments {
			plan.Installments = append(plan.Installments, models.Installment{
				Importo: rata.Importo,
				Pagato:  rata.Pagato,
			})
		}
		order.PaymentPlan = &plan
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	// Update customer stats
	if err := tx.Model(&models.Customer{}).Where("id = ?", input.CustomerID).
		Updates(map[string]interface{}{
			"total_spent": gorm.Expr("total_spent + ?", totale),
			"last_order":  order.CreatedAt,
		}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, order)
}

// GetOrders retrieves all orders; ?board=true restricts to the active board
// (archived orders excluded)
func GetOrders(c *gin.Context) {
	query := config.DB.
		Preload("ProductOrders").
		Preload("PaymentPlan.Installments").
		Preload("LegacyPayment")

	if c.Query("board") == "true" {
		query = query.Where("archiviata = ?", false)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder retrieves a specific order by ID
func GetOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	if err := config.DB.
		Preload("ProductOrders").
		Preload("PaymentPlan.Installments").
		Preload("LegacyPayment").
		Preload("Customer").
		Where("id = ?", orderUUID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrder updates an order's note or advances its workflow state.
// States only move forward through the pipeline.
func UpdateOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ?", orderUUID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Stato != nil {
		if models.StatoBustaOrdinal[*input.Stato] < models.StatoBustaOrdinal[order.Stato] {
			utils.RespondWithError(c, http.StatusBadRequest, "Order state cannot move backward")
			return
		}
		order.Stato = *input.Stato
	}
	if input.Note != nil {
		order.Note = *input.Note
	}

	if err := config.DB.Save(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// CancelProductOrder marks a single sub-item as cancelled
func CancelProductOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}
	itemUUID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	result := config.DB.Model(&models.ProductOrder{}).
		Where("id = ? AND order_id = ?", itemUUID, orderUUID).
		Update("annullato", true)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel item")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item cancelled"})
}

// UpdateLegacyPaymentInput updates the settlement fields of a legacy record
type UpdateLegacyPaymentInput struct {
	ModalitaSaldo *string `json:"modalitaSaldo"`
	Note          *string `json:"note"`
	Saldato       *bool   `json:"saldato"`
	DataSaldo     *string `json:"dataSaldo"`
}

// UpdateLegacyPayment records settlement progress on the legacy payment
func UpdateLegacyPayment(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input UpdateLegacyPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var legacy models.LegacyPaymentRecord
	if err := config.DB.Where("order_id = ?", orderUUID).First(&legacy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Legacy payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ModalitaSaldo != nil {
		legacy.ModalitaSaldo = *input.ModalitaSaldo
	}
	if input.Note != nil {
		legacy.Note = *input.Note
	}
	if input.Saldato != nil {
		legacy.Saldato = *input.Saldato
	}
	if input.DataSaldo != nil {
		legacy.DataSaldo = *input.DataSaldo
	}

	if err := config.DB.Save(&legacy).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update legacy payment")
		return
	}

	c.JSON(http.StatusOK, legacy)
}

// UpdateInstallmentInput records progress on one installment
type UpdateInstallmentInput struct {
	Pagato     *float64 `json:"pagato"`
	Completata *bool    `json:"completata"`
}

// UpdateInstallment records a payment against an installment of the order's
// plan. Marking the last open installment complete is what eventually lets
// the resolver consider the plan settled.
func UpdateInstallment(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}
	rataUUID, err := uuid.Parse(c.Param("rataId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid installment ID format")
		return
	}

	var input UpdateInstallmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var plan models.PaymentPlan
	if err := config.DB.Where("order_id = ?", orderUUID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment plan not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var rata models.Installment
	if err := config.DB.Where("id = ? AND payment_plan_id = ?", rataUUID, plan.ID).
		First(&rata).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Installment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Pagato != nil {
		rata.Pagato = *input.Pagato
	}
	if input.Completata != nil {
		rata.Completata = *input.Completata
	}

	if err := config.DB.Save(&rata).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update installment")
		return
	}

	c.JSON(http.StatusOK, rata)
}

// DeleteOrder deletes an order and its sub-records
func DeleteOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var order models.Order
	if err := tx.Where("id = ?", orderUUID).First(&order).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := tx.Where("order_id = ?", order.ID).Delete(&models.ProductOrder{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order items")
		return
	}

	if err := tx.Delete(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	// Update customer stats (decrement)
	if err := tx.Model(&models.Customer{}).Where("id = ?", order.CustomerID).
		Updates(map[string]interface{}{
			"total_spent": gorm.Expr("total_spent - ?", order.Totale),
		}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
