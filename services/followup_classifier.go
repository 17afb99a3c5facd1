// services/followup_classifier.go
package services

import (
	"time"

	"otticapro-backend/models"
	"otticapro-backend/utils"
)

// FollowUpWindow bounds the elapsed time since an order's last update within
// which a follow-up call may be generated. The production default is 7-14
// days; the owner-only diagnostic path passes a wider window instead of
// touching this one.
type FollowUpWindow struct {
	Min time.Duration
	Max time.Duration
}

// DefaultFollowUpWindow is the production eligibility window.
var DefaultFollowUpWindow = FollowUpWindow{
	Min: 7 * 24 * time.Hour,
	Max: 14 * 24 * time.Hour,
}

// FollowUpDecision is the classifier output. Priorita is set exactly when
// Eligible is true.
type FollowUpDecision struct {
	Eligible bool
	Priorita models.PrioritaChiamata
}

// ClassifyFollowUp decides whether a delivered order warrants a follow-up
// call and at what priority. It is pure and safe to call redundantly; the
// duplicate check against already-generated calls belongs to the caller and
// must happen before the decision is persisted.
func ClassifyFollowUp(order models.Order, customer models.Customer, ticketValue float64, firstLensPurchase bool, shopPhones []string, window FollowUpWindow, now time.Time) FollowUpDecision {
	if order.Stato != models.StatoConsegnataPagata {
		return FollowUpDecision{}
	}

	elapsed := now.Sub(order.UpdatedAt)
	if elapsed < window.Min || elapsed > window.Max {
		return FollowUpDecision{}
	}

	if !utils.ValidatePhone(customer.Phone) {
		return FollowUpDecision{}
	}
	// The shop's own numbers are placeholders, unless the record really is
	// the shop's counter account.
	if utils.IsPlaceholderPhone(customer.Phone, shopPhones) && !customer.IsShopAccount {
		return FollowUpDecision{}
	}

	priorita := PriorityFor(order.Categoria, ticketValue, firstLensPurchase)
	if priorita == "" {
		// No rule matched: the order gets no call at all, which is
		// different from an eligible low-priority call.
		return FollowUpDecision{}
	}
	return FollowUpDecision{Eligible: true, Priorita: priorita}
}

// PriorityFor is the single priority rule table; first matching tier wins,
// so higher tiers shadow lower ones. An older generation path used only the
// first two tiers; this table is canonical for every caller.
func PriorityFor(categoria models.CategoriaBusta, ticketValue float64, firstLensPurchase bool) models.PrioritaChiamata {
	eyewear := categoria == models.CategoriaOcchialeCompleto || categoria == models.CategoriaOcchialeVista

	if ticketValue >= 400 && eyewear {
		return models.PrioritaAlta
	}

	if firstLensPurchase ||
		(ticketValue >= 100 && categoria == models.CategoriaLentiVista) ||
		(ticketValue >= 200 && eyewear) {
		return models.PrioritaNormale
	}

	if ticketValue >= 400 && categoria == models.CategoriaOcchialeSole {
		return models.PrioritaBassa
	}
	if ticketValue >= 100 && !eyewear &&
		categoria != models.CategoriaLentiVista && categoria != models.CategoriaOcchialeSole {
		return models.PrioritaBassa
	}

	return ""
}
