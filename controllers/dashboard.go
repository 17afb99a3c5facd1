package controllers

import (
	"net/http"
	"time"

	"otticapro-backend/config"
	"otticapro-backend/models"
	"otticapro-backend/services"
	"otticapro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardOverview struct {
	ActiveOrders       int64            `json:"activeOrders"`
	OrdersByState      map[string]int64 `json:"ordersByState"`
	AwaitingSettlement int64            `json:"awaitingSettlement"`
	PendingCalls       map[string]int64 `json:"pendingCalls"`
	CallbacksDueToday  int64            `json:"callbacksDueToday"`
	TotalCustomers     int64            `json:"totalCustomers"`
	CustomersAtRisk    int64            `json:"customersAtRisk"`
	CustomersCritical  int64            `json:"customersCritical"`
}

// GetDashboardOverview returns the active-board counters shown on the
// operations dashboard
func GetDashboardOverview(c *gin.Context) {
	overview := DashboardOverview{
		OrdersByState: map[string]int64{},
		PendingCalls:  map[string]int64{},
	}

	// Active board size
	config.DB.Model(&models.Order{}).
		Where("archiviata = ?", false).
		Count(&overview.ActiveOrders)

	// Orders per workflow state
	for stato := range models.StatoBustaOrdinal {
		var count int64
		config.DB.Model(&models.Order{}).
			Where("archiviata = ? AND stato = ?", false, stato).
			Count(&count)
		overview.OrdersByState[string(stato)] = count
	}

	// Delivered orders still on the board are waiting out settlement or the
	// grace period
	overview.AwaitingSettlement = overview.OrdersByState[string(models.StatoConsegnataPagata)]

	// Pending calls per priority tier
	for _, priorita := range []models.PrioritaChiamata{models.PrioritaAlta, models.PrioritaNormale, models.PrioritaBassa} {
		var count int64
		config.DB.Model(&models.FollowUpCall{}).
			Where("stato = ? AND archiviata = ? AND priorita = ?", models.StatoDaChiamare, false, priorita).
			Count(&count)
		overview.PendingCalls[string(priorita)] = count
	}

	// Callbacks scheduled for today
	today := utils.BeginningOfDay(time.Now())
	tomorrow := today.AddDate(0, 0, 1)
	config.DB.Model(&models.FollowUpCall{}).
		Where("stato = ? AND archiviata = ? AND data_richiamo >= ? AND data_richiamo < ?",
			models.StatoRichiamami, false, today, tomorrow).
		Count(&overview.CallbacksDueToday)

	config.DB.Model(&models.Customer{}).
		Where("is_active = ?", true).
		Count(&overview.TotalCustomers)

	atRisk, critical := countCustomersBySentiment()
	overview.CustomersAtRisk = atRisk
	overview.CustomersCritical = critical

	c.JSON(http.StatusOK, overview)
}

// countCustomersBySentiment recomputes the derived category for every customer
// with at least one worked call and counts the ones needing attention. Only
// the most recent worked call per customer counts.
func countCustomersBySentiment() (atRisk, critical int64) {
	var calls []models.FollowUpCall
	if err := config.DB.
		Preload("Order").
		Where("stato <> ?", models.StatoDaChiamare).
		Order("updated_at ASC").
		Find(&calls).Error; err != nil {
		return 0, 0
	}

	categorizer := services.NewCategorizer()
	var settings models.ShopSettings
	if err := config.DB.First(&settings).Error; err == nil && settings.SogliaSuperFan > 0 {
		categorizer.SogliaSuperFan = settings.SogliaSuperFan
	}

	latest := map[uuid.UUID]models.CategoriaCliente{}
	for _, call := range calls {
		latest[call.Order.CustomerID] = categorizer.Categorize(services.CallOutcome{
			Stato:           call.Stato,
			Soddisfazione:   call.Soddisfazione,
			Note:            call.Note,
			ProblemaRisolto: call.ProblemaRisolto,
		}, call.Order.Totale)
	}

	for _, categoria := range latest {
		switch categoria {
		case models.CategoriaARischio:
			atRisk++
		case models.CategoriaCritico:
			critical++
		}
	}
	return atRisk, critical
}
