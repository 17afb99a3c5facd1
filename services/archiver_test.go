package services

import (
	"testing"
	"time"

	"otticapro-backend/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func settledOrder(t *testing.T, settledAt time.Time) models.Order {
	t.Helper()
	return models.Order{
		Stato: models.StatoConsegnataPagata,
		LegacyPayment: &models.LegacyPaymentRecord{
			ModalitaSaldo: "contanti",
			Saldato:       true,
			Model:         gorm.Model{UpdatedAt: settledAt},
		},
	}
}

func TestShouldArchiveGracePeriod(t *testing.T) {
	settledAt := mustTime(t, "2024-03-01T10:00:00Z")
	order := settledOrder(t, settledAt)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"Just under a day stays visible", settledAt.Add(23*time.Hour + 59*time.Minute), false},
		{"Just over a day is archived", settledAt.Add(24*time.Hour + 1*time.Minute), true},
		{"Exactly a day is archived", settledAt.Add(24 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldArchive(order, tt.now))
		})
	}
}

func TestShouldArchiveCancellationShortCircuit(t *testing.T) {
	now := mustTime(t, "2024-03-01T10:00:00Z")

	tests := []struct {
		name  string
		order models.Order
		want  bool
	}{
		{
			name: "All sub-items cancelled archives regardless of state",
			order: models.Order{
				Stato: models.StatoNuova,
				ProductOrders: []models.ProductOrder{
					{Annullato: true},
					{Annullato: true},
				},
			},
			want: true,
		},
		{
			name: "One live sub-item keeps the order on the board",
			order: models.Order{
				Stato: models.StatoNuova,
				ProductOrders: []models.ProductOrder{
					{Annullato: true},
					{Annullato: false},
				},
			},
			want: false,
		},
		{
			name: "No sub-items never triggers the cancellation rule",
			order: models.Order{
				Stato: models.StatoNuova,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldArchive(tt.order, now))
		})
	}
}

func TestShouldArchiveRequiresTerminalState(t *testing.T) {
	settledAt := mustTime(t, "2024-03-01T10:00:00Z")
	order := settledOrder(t, settledAt)
	order.Stato = models.StatoPronta

	assert.False(t, ShouldArchive(order, settledAt.Add(48*time.Hour)))
}

func TestShouldArchiveRequiresResolvedPayment(t *testing.T) {
	now := mustTime(t, "2024-03-10T10:00:00Z")
	order := models.Order{
		Stato: models.StatoConsegnataPagata,
		PaymentPlan: &models.PaymentPlan{
			Tipo: models.TipoRate,
			Installments: []models.Installment{
				{Completata: false, Model: gorm.Model{UpdatedAt: now.Add(-72 * time.Hour)}},
			},
			Model: gorm.Model{UpdatedAt: now.Add(-72 * time.Hour)},
		},
	}

	assert.False(t, ShouldArchive(order, now))
}
