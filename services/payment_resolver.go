// services/payment_resolver.go
package services

import (
	"strings"
	"time"

	"otticapro-backend/models"
	"otticapro-backend/utils"
)

// Free-text settlement methods found in legacy records, grouped by the
// payment scheme they imply. Matching is case-insensitive substring.
var (
	legacyFinancingKeywords   = []string{"finanziament", "findomestic", "compass", "prestito"}
	legacyInstallmentKeywords = []string{"rate", "rata", "acconti"}
	legacySingleKeywords      = []string{"contant", "carta", "bancomat", "pos", "bonifico", "assegno", "satispay"}
)

// Sentinel text staff write in the notes field when no payment is expected
// (warranty work, remakes, gifts).
const legacyNoPaymentSentinel = "nessun pagamento"

// nearZero is the cent-resolution cutoff below which a settled legacy total
// counts as the no-payment sentinel.
const nearZero = 0.01

// EffectivePaymentType picks the single authoritative payment representation
// for an order and maps it to a payment scheme. A present plan always wins;
// otherwise the scheme is derived from the legacy record's free text.
// Anything unrecognized maps to TipoNessuno.
func EffectivePaymentType(plan *models.PaymentPlan, legacy *models.LegacyPaymentRecord) models.TipoPagamento {
	if plan != nil {
		switch plan.Tipo {
		case models.TipoSaldoUnico, models.TipoRate, models.TipoFinanziamento, models.TipoNessunPagamento:
			return plan.Tipo
		}
		return models.TipoNessuno
	}
	if legacy == nil {
		return models.TipoNessuno
	}
	return legacyPaymentType(legacy)
}

// legacyPaymentType checks the no-payment sentinels before the settlement
// keywords: a zero-total record marked settled is a warranty or goodwill job
// regardless of what settlement text staff typed into it.
func legacyPaymentType(legacy *models.LegacyPaymentRecord) models.TipoPagamento {
	note := strings.ToLower(legacy.Note)
	if strings.Contains(note, legacyNoPaymentSentinel) {
		return models.TipoNessunPagamento
	}
	if legacy.Saldato && legacy.PrezzoFinale < nearZero {
		return models.TipoNessunPagamento
	}

	modalita := strings.ToLower(legacy.ModalitaSaldo)
	if containsAny(modalita, legacyFinancingKeywords) {
		return models.TipoFinanziamento
	}
	if containsAny(modalita, legacyInstallmentKeywords) {
		return models.TipoRate
	}
	if containsAny(modalita, legacySingleKeywords) {
		return models.TipoSaldoUnico
	}
	return models.TipoNessuno
}

// ResolvePaymentCompletion reduces the two coexisting payment
// representations to a single "payment completed at" timestamp, or nil when
// the balance is still open. It never guesses: malformed dates and
// unrecognized settlement text resolve to nil.
func ResolvePaymentCompletion(plan *models.PaymentPlan, legacy *models.LegacyPaymentRecord) *time.Time {
	switch EffectivePaymentType(plan, legacy) {
	case models.TipoFinanziamento:
		// Financing is settled administratively the moment it is
		// recorded, not when the money arrives.
		if plan != nil {
			return timestampOf(plan.UpdatedAt)
		}
		return timestampOf(legacy.UpdatedAt)

	case models.TipoRate:
		return resolveInstallments(plan)

	case models.TipoSaldoUnico:
		return resolveSingleSettlement(plan, legacy)

	case models.TipoNessunPagamento:
		if legacy != nil {
			if ts := timestampOf(legacy.UpdatedAt); ts != nil {
				return ts
			}
		}
		if plan != nil {
			return timestampOf(plan.UpdatedAt)
		}
		return nil
	}
	return nil
}

// resolveInstallments completes a plan only on explicit flags: the plan's
// own flag, or every installment individually marked complete. Total paid
// covering total due is never sufficient on its own.
func resolveInstallments(plan *models.PaymentPlan) *time.Time {
	if plan == nil {
		return nil
	}

	complete := plan.Completato
	if !complete && len(plan.Installments) > 0 {
		complete = true
		for _, rata := range plan.Installments {
			if !rata.Completata {
				complete = false
				break
			}
		}
	}
	if !complete {
		return nil
	}

	var latest *time.Time
	for _, rata := range plan.Installments {
		if !rata.Completata {
			continue
		}
		if ts := timestampOf(rata.UpdatedAt); ts != nil {
			if latest == nil || ts.After(*latest) {
				latest = ts
			}
		}
	}
	if latest != nil {
		return latest
	}
	return timestampOf(plan.UpdatedAt)
}

func resolveSingleSettlement(plan *models.PaymentPlan, legacy *models.LegacyPaymentRecord) *time.Time {
	if legacy != nil {
		if ts := utils.ParseDate(legacy.DataSaldo); ts != nil {
			return ts
		}
		if legacy.Saldato {
			if ts := timestampOf(legacy.UpdatedAt); ts != nil {
				return ts
			}
			if plan != nil {
				return timestampOf(plan.UpdatedAt)
			}
			return nil
		}
	}
	if plan != nil && plan.Completato {
		return timestampOf(plan.UpdatedAt)
	}
	return nil
}

// timestampOf treats the zero time as absent.
func timestampOf(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
