package services

import (
	"testing"
	"time"

	"otticapro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestEffectivePaymentType(t *testing.T) {
	tests := []struct {
		name   string
		plan   *models.PaymentPlan
		legacy *models.LegacyPaymentRecord
		want   models.TipoPagamento
	}{
		{
			name: "Plan tag is used directly",
			plan: &models.PaymentPlan{Tipo: models.TipoRate},
			want: models.TipoRate,
		},
		{
			name:   "Plan wins over legacy",
			plan:   &models.PaymentPlan{Tipo: models.TipoFinanziamento},
			legacy: &models.LegacyPaymentRecord{ModalitaSaldo: "contanti"},
			want:   models.TipoFinanziamento,
		},
		{
			name: "Plan with unknown tag is undetermined",
			plan: &models.PaymentPlan{Tipo: models.TipoPagamento("bitcoin")},
			want: models.TipoNessuno,
		},
		{
			name:   "Legacy cash maps to single settlement",
			legacy: &models.LegacyPaymentRecord{ModalitaSaldo: "Contanti alla consegna"},
			want:   models.TipoSaldoUnico,
		},
		{
			name:   "Legacy card maps to single settlement",
			legacy: &models.LegacyPaymentRecord{ModalitaSaldo: "CARTA di credito"},
			want:   models.TipoSaldoUnico,
		},
		{
			name:   "Legacy wire maps to single settlement",
			legacy: &models.LegacyPaymentRecord{ModalitaSaldo: "bonifico bancario"},
			want:   models.TipoSaldoUnico,
		},
		{
			name:   "Legacy financing text maps to bank financing",
			legacy: &models.LegacyPaymentRecord{ModalitaSaldo: "Finanziamento Findomestic 12 mesi"},
			want:   models.TipoFinanziamento,
		},
		{
			name:   "Legacy multi-installment text maps to installments",
			legacy: &models.LegacyPaymentRecord{ModalitaSaldo: "pagamento a rate mensili"},
			want:   models.TipoRate,
		},
		{
			name:   "Legacy no-payment sentinel in notes",
			legacy: &models.LegacyPaymentRecord{ModalitaSaldo: "contanti", Note: "Nessun pagamento dovuto, rifacimento in garanzia"},
			want:   models.TipoNessunPagamento,
		},
		{
			name:   "Legacy zero total marked settled is no-payment",
			legacy: &models.LegacyPaymentRecord{PrezzoFinale: 0, Saldato: true},
			want:   models.TipoNessunPagamento,
		},
		{
			name:   "Zero total settled outranks the settlement keyword",
			legacy: &models.LegacyPaymentRecord{PrezzoFinale: 0, ModalitaSaldo: "contanti", Saldato: true},
			want:   models.TipoNessunPagamento,
		},
		{
			name:   "Priced record with a keyword is not the zero-total sentinel",
			legacy: &models.LegacyPaymentRecord{PrezzoFinale: 300, ModalitaSaldo: "contanti", Saldato: true},
			want:   models.TipoSaldoUnico,
		},
		{
			name:   "Legacy unrecognized text is undetermined",
			legacy: &models.LegacyPaymentRecord{ModalitaSaldo: "da definire"},
			want:   models.TipoNessuno,
		},
		{
			name: "Nothing present is undetermined",
			want: models.TipoNessuno,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectivePaymentType(tt.plan, tt.legacy))
		})
	}
}

func TestResolveInstallmentsPartialSumNeverCompletes(t *testing.T) {
	updated := mustTime(t, "2024-03-01T10:00:00Z")
	plan := &models.PaymentPlan{
		Tipo:   models.TipoRate,
		Totale: 300,
		Installments: []models.Installment{
			{Importo: 150, Pagato: 150, Model: gorm.Model{UpdatedAt: updated}},
			{Importo: 150, Pagato: 200, Model: gorm.Model{UpdatedAt: updated}},
		},
		Model: gorm.Model{UpdatedAt: updated},
	}

	// Paid covers due, but no installment is individually marked complete.
	assert.Nil(t, ResolvePaymentCompletion(plan, nil))
}

func TestResolveInstallments(t *testing.T) {
	early := mustTime(t, "2024-03-01T10:00:00Z")
	late := mustTime(t, "2024-03-20T16:30:00Z")
	planUpdated := mustTime(t, "2024-04-01T09:00:00Z")

	tests := []struct {
		name string
		plan *models.PaymentPlan
		want *time.Time
	}{
		{
			name: "All installments complete uses latest installment timestamp",
			plan: &models.PaymentPlan{
				Tipo: models.TipoRate,
				Installments: []models.Installment{
					{Completata: true, Model: gorm.Model{UpdatedAt: late}},
					{Completata: true, Model: gorm.Model{UpdatedAt: early}},
				},
				Model: gorm.Model{UpdatedAt: planUpdated},
			},
			want: &late,
		},
		{
			name: "Plan flag with no installments falls back to plan timestamp",
			plan: &models.PaymentPlan{
				Tipo:       models.TipoRate,
				Completato: true,
				Model:      gorm.Model{UpdatedAt: planUpdated},
			},
			want: &planUpdated,
		},
		{
			name: "One open installment keeps the plan open",
			plan: &models.PaymentPlan{
				Tipo: models.TipoRate,
				Installments: []models.Installment{
					{Completata: true, Model: gorm.Model{UpdatedAt: early}},
					{Completata: false, Model: gorm.Model{UpdatedAt: late}},
				},
				Model: gorm.Model{UpdatedAt: planUpdated},
			},
			want: nil,
		},
		{
			name: "Empty plan without flag stays open",
			plan: &models.PaymentPlan{
				Tipo:  models.TipoRate,
				Model: gorm.Model{UpdatedAt: planUpdated},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePaymentCompletion(tt.plan, nil)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.True(t, tt.want.Equal(*got))
			}
		})
	}
}

func TestResolveSingleSettlement(t *testing.T) {
	legacyUpdated := mustTime(t, "2024-05-02T12:00:00Z")
	planUpdated := mustTime(t, "2024-05-10T12:00:00Z")
	explicit := mustTime(t, "2024-05-01T00:00:00Z")

	tests := []struct {
		name   string
		plan   *models.PaymentPlan
		legacy *models.LegacyPaymentRecord
		want   *time.Time
	}{
		{
			name: "Explicit settlement date wins",
			legacy: &models.LegacyPaymentRecord{
				PrezzoFinale:  300,
				ModalitaSaldo: "contanti",
				Saldato:       true,
				DataSaldo:     "2024-05-01",
				Model:         gorm.Model{UpdatedAt: legacyUpdated},
			},
			want: &explicit,
		},
		{
			name: "Settled without a parseable date uses the update timestamp",
			legacy: &models.LegacyPaymentRecord{
				PrezzoFinale:  300,
				ModalitaSaldo: "carta",
				Saldato:       true,
				DataSaldo:     "saldato a mano",
				Model:         gorm.Model{UpdatedAt: legacyUpdated},
			},
			want: &legacyUpdated,
		},
		{
			name: "Open legacy record resolves to nothing",
			legacy: &models.LegacyPaymentRecord{
				ModalitaSaldo: "bancomat",
				Model:         gorm.Model{UpdatedAt: legacyUpdated},
			},
			want: nil,
		},
		{
			name: "Completed plan uses the plan timestamp",
			plan: &models.PaymentPlan{
				Tipo:       models.TipoSaldoUnico,
				Completato: true,
				Model:      gorm.Model{UpdatedAt: planUpdated},
			},
			want: &planUpdated,
		},
		{
			name: "Open plan resolves to nothing",
			plan: &models.PaymentPlan{
				Tipo:  models.TipoSaldoUnico,
				Model: gorm.Model{UpdatedAt: planUpdated},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePaymentCompletion(tt.plan, tt.legacy)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.True(t, tt.want.Equal(*got))
			}
		})
	}
}

func TestResolveFinancingSettlesOnRecording(t *testing.T) {
	legacyUpdated := mustTime(t, "2024-06-01T09:00:00Z")
	planUpdated := mustTime(t, "2024-06-15T09:00:00Z")

	legacy := &models.LegacyPaymentRecord{
		ModalitaSaldo: "finanziamento 24 mesi",
		Model:         gorm.Model{UpdatedAt: legacyUpdated},
	}
	got := ResolvePaymentCompletion(nil, legacy)
	require.NotNil(t, got)
	assert.True(t, legacyUpdated.Equal(*got))

	plan := &models.PaymentPlan{
		Tipo:  models.TipoFinanziamento,
		Model: gorm.Model{UpdatedAt: planUpdated},
	}
	got = ResolvePaymentCompletion(plan, nil)
	require.NotNil(t, got)
	assert.True(t, planUpdated.Equal(*got))
}

func TestResolveNoPayment(t *testing.T) {
	legacyUpdated := mustTime(t, "2024-07-01T09:00:00Z")

	legacy := &models.LegacyPaymentRecord{
		Note:  "nessun pagamento, sostituzione in garanzia",
		Model: gorm.Model{UpdatedAt: legacyUpdated},
	}
	got := ResolvePaymentCompletion(nil, legacy)
	require.NotNil(t, got)
	assert.True(t, legacyUpdated.Equal(*got))
}

func TestResolverIsIdempotent(t *testing.T) {
	updated := mustTime(t, "2024-03-20T16:30:00Z")
	plan := &models.PaymentPlan{
		Tipo: models.TipoRate,
		Installments: []models.Installment{
			{Completata: true, Model: gorm.Model{UpdatedAt: updated}},
		},
		Model: gorm.Model{UpdatedAt: updated},
	}

	first := ResolvePaymentCompletion(plan, nil)
	second := ResolvePaymentCompletion(plan, nil)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.True(t, first.Equal(*second))
}
