// services/archiver.go
package services

import (
	"time"

	"otticapro-backend/models"
)

// ArchiveGracePeriod keeps a settled order on the active board for a full
// day after settlement so staff can make same-day corrections. A fixed
// duration, not a calendar-day comparison.
const ArchiveGracePeriod = 24 * time.Hour

// ShouldArchive decides whether an order should disappear from the active
// board. It has no side effects; callers persist the decision and exclude
// archived orders from active views themselves.
func ShouldArchive(order models.Order, now time.Time) bool {
	// A fully cancelled order has nothing left to track, whatever its
	// workflow state or payment situation.
	if len(order.ProductOrders) > 0 && allCancelled(order.ProductOrders) {
		return true
	}

	if order.Stato != models.StatoConsegnataPagata {
		return false
	}

	settledAt := ResolvePaymentCompletion(order.PaymentPlan, order.LegacyPayment)
	if settledAt == nil {
		return false
	}
	return now.Sub(*settledAt) >= ArchiveGracePeriod
}

func allCancelled(items []models.ProductOrder) bool {
	for _, item := range items {
		if !item.Annullato {
			return false
		}
	}
	return true
}
