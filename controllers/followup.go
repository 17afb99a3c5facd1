// controllers/followup.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"otticapro-backend/config"
	"otticapro-backend/models"
	"otticapro-backend/services"
	"otticapro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sweep is the shared sweep service, wired in main. The diagnostic
// generation endpoint drives it with a caller-supplied window.
var Sweep *services.SweepService

// RecordOutcomeInput defines the expected JSON structure for recording the
// result of a follow-up call
type RecordOutcomeInput struct {
	Stato           models.StatoChiamata  `json:"stato" binding:"required,oneof=chiamato_completato non_vuole_essere_contattato non_risponde cellulare_staccato numero_sbagliato richiamami"`
	Soddisfazione   *models.Soddisfazione `json:"soddisfazione" binding:"omitempty,oneof=molto_soddisfatto soddisfatto poco_soddisfatto insoddisfatto"`
	Note            *string               `json:"note"`
	ProblemaRisolto *bool                 `json:"problemaRisolto"`
	DataRichiamo    *time.Time            `json:"dataRichiamo"`
}

// CreateErrorTicketInput defines the expected JSON structure for deriving an
// error ticket from a call
type CreateErrorTicketInput struct {
	Descrizione  string `json:"descrizione" binding:"required"`
	Assegnatario string `json:"assegnatario"`
}

// GetFollowUpCalls lists follow-up calls, highest priority first. Supports
// ?stato= filtering; archived calls are excluded unless ?archived=true.
func GetFollowUpCalls(c *gin.Context) {
	query := config.DB.Preload("Order.Customer")

	if stato := c.Query("stato"); stato != "" {
		query = query.Where("stato = ?", stato)
	}
	if c.Query("archived") != "true" {
		query = query.Where("archiviata = ?", false)
	}

	var calls []models.FollowUpCall
	if err := query.
		Order("CASE priorita WHEN 'alta' THEN 0 WHEN 'normale' THEN 1 ELSE 2 END, data_generazione ASC").
		Find(&calls).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve follow-up calls")
		return
	}

	c.JSON(http.StatusOK, calls)
}

// RecordCallOutcome records the result of an outreach call and returns the
// recomputed customer category alongside the updated call
func RecordCallOutcome(c *gin.Context) {
	callUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid call ID format")
		return
	}

	var input RecordOutcomeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Only a completed call carries a satisfaction level
	if input.Soddisfazione != nil && input.Stato != models.StatoChiamatoCompletato {
		utils.RespondWithError(c, http.StatusBadRequest, "Satisfaction can only be recorded on a completed call")
		return
	}
	if input.DataRichiamo != nil && input.Stato != models.StatoRichiamami {
		utils.RespondWithError(c, http.StatusBadRequest, "A callback date requires the richiamami status")
		return
	}

	var call models.FollowUpCall
	if err := config.DB.Preload("Order").Where("id = ?", callUUID).First(&call).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Follow-up call not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	call.Stato = input.Stato
	if input.Soddisfazione != nil {
		call.Soddisfazione = *input.Soddisfazione
	}
	if input.Note != nil {
		call.Note = *input.Note
	}
	if input.ProblemaRisolto != nil {
		call.ProblemaRisolto = *input.ProblemaRisolto
	}
	call.DataRichiamo = input.DataRichiamo

	if input.Stato != models.StatoRichiamami {
		now := time.Now()
		call.DataCompletamento = &now
	}

	if err := config.DB.Save(&call).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record call outcome")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"call":             call,
		"categoriaCliente": ComputeCustomerCategory(call.Order.CustomerID),
	})
}

// ArchiveFollowUpCall hides a worked call from the active list
func ArchiveFollowUpCall(c *gin.Context) {
	callUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid call ID format")
		return
	}

	result := config.DB.Model(&models.FollowUpCall{}).
		Where("id = ?", callUUID).
		Update("archiviata", true)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to archive call")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Follow-up call not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Call archived"})
}

// CreateErrorTicket derives an error ticket from a dissatisfied call,
// exactly once per call
func CreateErrorTicket(c *gin.Context) {
	callUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid call ID format")
		return
	}

	var input CreateErrorTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var call models.FollowUpCall
	if err := config.DB.Preload("Order").Where("id = ?", callUUID).First(&call).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Follow-up call not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Exactly-once: a call never produces a second ticket
	if call.ErrorTicketCreato {
		utils.RespondWithError(c, http.StatusConflict, "An error ticket already exists for this call")
		return
	}

	soglie := services.DefaultImpattoSoglie
	var settings models.ShopSettings
	if err := config.DB.First(&settings).Error; err == nil {
		if settings.SogliaImpattoMedio > 0 {
			soglie.Medio = settings.SogliaImpattoMedio
		}
		if settings.SogliaImpattoAlto > 0 {
			soglie.Alto = settings.SogliaImpattoAlto
		}
	}

	ticket := models.ErrorTicket{
		OrderID:        call.OrderID,
		FollowUpCallID: call.ID,
		Descrizione:    input.Descrizione,
		Impatto:        services.CalculateImpattoCliente(call.Order.Totale, soglie),
		Assegnatario:   input.Assegnatario,
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&ticket).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create error ticket")
		return
	}

	if err := tx.Model(&models.FollowUpCall{}).Where("id = ?", call.ID).
		Update("error_ticket_creato", true).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to flag call")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, ticket)
}

// GenerateFollowUpCalls runs the generation pass on demand. Owner-only; the
// optional minDays/maxDays query parameters widen the eligibility window for
// diagnostics without touching the production default.
func GenerateFollowUpCalls(c *gin.Context) {
	window := services.DefaultFollowUpWindow
	if v := c.Query("minDays"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid minDays")
			return
		}
		window.Min = time.Duration(days) * 24 * time.Hour
	}
	if v := c.Query("maxDays"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid maxDays")
			return
		}
		window.Max = time.Duration(days) * 24 * time.Hour
	}
	if window.Max < window.Min {
		utils.RespondWithError(c, http.StatusBadRequest, "maxDays must be >= minDays")
		return
	}

	generated := Sweep.GenerateFollowUpCalls(time.Now(), window)
	c.JSON(http.StatusOK, gin.H{"generated": generated})
}
