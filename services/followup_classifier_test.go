package services

import (
	"testing"
	"time"

	"otticapro-backend/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func deliveredOrder(t *testing.T, categoria models.CategoriaBusta, updatedAt time.Time) models.Order {
	t.Helper()
	return models.Order{
		Stato:     models.StatoConsegnataPagata,
		Categoria: categoria,
		Model:     gorm.Model{UpdatedAt: updatedAt},
	}
}

func TestClassifyFollowUpEligibilityWindow(t *testing.T) {
	now := mustTime(t, "2024-03-20T10:00:00Z")
	customer := models.Customer{Phone: "+393331234567"}

	tests := []struct {
		name     string
		elapsed  time.Duration
		eligible bool
	}{
		{"Six days is too soon", 6 * 24 * time.Hour, false},
		{"Seven days opens the window", 7 * 24 * time.Hour, true},
		{"Ten days is inside the window", 10 * 24 * time.Hour, true},
		{"Fourteen days closes the window", 14 * 24 * time.Hour, true},
		{"Fifteen days is too late", 15 * 24 * time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := deliveredOrder(t, models.CategoriaOcchialeCompleto, now.Add(-tt.elapsed))
			decision := ClassifyFollowUp(order, customer, 450, false, nil, DefaultFollowUpWindow, now)
			assert.Equal(t, tt.eligible, decision.Eligible)
		})
	}
}

func TestClassifyFollowUpWidenedWindowOverride(t *testing.T) {
	now := mustTime(t, "2024-03-20T10:00:00Z")
	customer := models.Customer{Phone: "+393331234567"}
	order := deliveredOrder(t, models.CategoriaOcchialeCompleto, now.Add(-20*24*time.Hour))

	// The default rule rejects a 20-day-old order.
	assert.False(t, ClassifyFollowUp(order, customer, 450, false, nil, DefaultFollowUpWindow, now).Eligible)

	// The diagnostic path passes a wider window instead of changing the default.
	wide := FollowUpWindow{Min: 24 * time.Hour, Max: 60 * 24 * time.Hour}
	decision := ClassifyFollowUp(order, customer, 450, false, nil, wide, now)
	assert.True(t, decision.Eligible)
	assert.Equal(t, models.PrioritaAlta, decision.Priorita)
}

func TestClassifyFollowUpPhoneChecks(t *testing.T) {
	now := mustTime(t, "2024-03-20T10:00:00Z")
	order := deliveredOrder(t, models.CategoriaOcchialeCompleto, now.Add(-8*24*time.Hour))
	shopPhones := []string{"+390212345678"}

	tests := []struct {
		name     string
		customer models.Customer
		eligible bool
	}{
		{
			name:     "Valid personal number is callable",
			customer: models.Customer{Phone: "+393331234567"},
			eligible: true,
		},
		{
			name:     "Missing number is not callable",
			customer: models.Customer{Phone: ""},
			eligible: false,
		},
		{
			name:     "Garbage number is not callable",
			customer: models.Customer{Phone: "n/a"},
			eligible: false,
		},
		{
			name:     "Shop placeholder number is not callable",
			customer: models.Customer{Phone: "+390212345678"},
			eligible: false,
		},
		{
			name:     "Shop's own counter account keeps its number",
			customer: models.Customer{Phone: "+390212345678", IsShopAccount: true},
			eligible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := ClassifyFollowUp(order, tt.customer, 450, false, shopPhones, DefaultFollowUpWindow, now)
			assert.Equal(t, tt.eligible, decision.Eligible)
		})
	}
}

func TestClassifyFollowUpRequiresTerminalState(t *testing.T) {
	now := mustTime(t, "2024-03-20T10:00:00Z")
	customer := models.Customer{Phone: "+393331234567"}
	order := deliveredOrder(t, models.CategoriaOcchialeCompleto, now.Add(-8*24*time.Hour))
	order.Stato = models.StatoPronta

	assert.False(t, ClassifyFollowUp(order, customer, 450, false, nil, DefaultFollowUpWindow, now).Eligible)
}

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		name        string
		categoria   models.CategoriaBusta
		ticketValue float64
		firstLens   bool
		want        models.PrioritaChiamata
	}{
		{"High value complete glasses shadow the normale tier", models.CategoriaOcchialeCompleto, 450, false, models.PrioritaAlta},
		{"High value vision glasses", models.CategoriaOcchialeVista, 400, false, models.PrioritaAlta},
		{"Mid value complete glasses", models.CategoriaOcchialeCompleto, 399, false, models.PrioritaNormale},
		{"First contact lens purchase at any value", models.CategoriaLentiAContatto, 50, true, models.PrioritaNormale},
		{"Vision lenses over the low bar", models.CategoriaLentiVista, 150, false, models.PrioritaNormale},
		{"Expensive sunglasses", models.CategoriaOcchialeSole, 400, false, models.PrioritaBassa},
		{"Cheap sunglasses get nothing", models.CategoriaOcchialeSole, 399, false, ""},
		{"Miscellaneous over the low bar", models.CategoriaAltro, 100, false, models.PrioritaBassa},
		{"Repeat contact lenses over the low bar", models.CategoriaLentiAContatto, 150, false, models.PrioritaBassa},
		{"Cheap miscellaneous gets nothing", models.CategoriaAltro, 99, false, ""},
		{"Cheap complete glasses get nothing", models.CategoriaOcchialeCompleto, 150, false, ""},
		{"Cheap vision lenses get nothing", models.CategoriaLentiVista, 99, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriorityFor(tt.categoria, tt.ticketValue, tt.firstLens))
		})
	}
}

func TestClassifyFollowUpNoRuleMeansNoCall(t *testing.T) {
	now := mustTime(t, "2024-03-20T10:00:00Z")
	customer := models.Customer{Phone: "+393331234567"}
	order := deliveredOrder(t, models.CategoriaAltro, now.Add(-8*24*time.Hour))

	decision := ClassifyFollowUp(order, customer, 50, false, nil, DefaultFollowUpWindow, now)
	assert.False(t, decision.Eligible)
	assert.Empty(t, decision.Priorita)
}

func TestClassifyFollowUpIsIdempotent(t *testing.T) {
	now := mustTime(t, "2024-03-20T10:00:00Z")
	customer := models.Customer{Phone: "+393331234567"}
	order := deliveredOrder(t, models.CategoriaOcchialeCompleto, now.Add(-8*24*time.Hour))

	first := ClassifyFollowUp(order, customer, 450, false, nil, DefaultFollowUpWindow, now)
	second := ClassifyFollowUp(order, customer, 450, false, nil, DefaultFollowUpWindow, now)
	assert.Equal(t, first, second)
}
