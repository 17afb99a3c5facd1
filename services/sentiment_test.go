package services

import (
	"testing"

	"otticapro-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	categorizer := NewCategorizer()

	tests := []struct {
		name        string
		outcome     CallOutcome
		ticketValue float64
		want        models.CategoriaCliente
	}{
		{
			name: "Explicit refusal overrides everything",
			outcome: CallOutcome{
				Stato:         models.StatoNonVuoleContatto,
				Soddisfazione: models.MoltoSoddisfatto,
			},
			ticketValue: 1000,
			want:        models.CategoriaPerso,
		},
		{
			name: "Price keyword beats dissatisfaction",
			outcome: CallOutcome{
				Stato:           models.StatoChiamatoCompletato,
				Soddisfazione:   models.Insoddisfatto,
				Note:            "il prezzo era troppo caro",
				ProblemaRisolto: false,
			},
			ticketValue: 300,
			want:        models.CategoriaSensibilePrezzo,
		},
		{
			name: "Communication keyword beats price keyword",
			outcome: CallOutcome{
				Stato: models.StatoChiamatoCompletato,
				Note:  "non aveva capito i tempi di consegna e trovava il prezzo alto",
			},
			ticketValue: 300,
			want:        models.CategoriaDelicatoCom,
		},
		{
			name: "Keyword match is case-insensitive",
			outcome: CallOutcome{
				Stato: models.StatoNonRisponde,
				Note:  "da AVVISARE prima della consegna",
			},
			want: models.CategoriaDelicatoCom,
		},
		{
			name: "Dissatisfied but resolved is at risk",
			outcome: CallOutcome{
				Stato:           models.StatoChiamatoCompletato,
				Soddisfazione:   models.PocoSoddisfatto,
				ProblemaRisolto: true,
			},
			ticketValue: 300,
			want:        models.CategoriaARischio,
		},
		{
			name: "Dissatisfied and unresolved is critical",
			outcome: CallOutcome{
				Stato:           models.StatoChiamatoCompletato,
				Soddisfazione:   models.Insoddisfatto,
				ProblemaRisolto: false,
			},
			ticketValue: 300,
			want:        models.CategoriaCritico,
		},
		{
			name: "Very satisfied at the threshold is a super fan",
			outcome: CallOutcome{
				Stato:         models.StatoChiamatoCompletato,
				Soddisfazione: models.MoltoSoddisfatto,
			},
			ticketValue: 450,
			want:        models.CategoriaSuperFan,
		},
		{
			name: "Very satisfied below the threshold is a fan",
			outcome: CallOutcome{
				Stato:         models.StatoChiamatoCompletato,
				Soddisfazione: models.MoltoSoddisfatto,
			},
			ticketValue: 449.99,
			want:        models.CategoriaFan,
		},
		{
			name: "Merely satisfied gets no category",
			outcome: CallOutcome{
				Stato:         models.StatoChiamatoCompletato,
				Soddisfazione: models.Soddisfatto,
			},
			ticketValue: 1000,
			want:        models.CategoriaNonClassificato,
		},
		{
			name: "Satisfaction is ignored on a non-completed call",
			outcome: CallOutcome{
				Stato:         models.StatoNonRisponde,
				Soddisfazione: models.Insoddisfatto,
			},
			ticketValue: 300,
			want:        models.CategoriaNonClassificato,
		},
		{
			name: "Unrecognized status with nothing else gets no category",
			outcome: CallOutcome{
				Stato: models.StatoCellulareStaccato,
			},
			want: models.CategoriaNonClassificato,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, categorizer.Categorize(tt.outcome, tt.ticketValue))
		})
	}
}

func TestCategorizeCustomThreshold(t *testing.T) {
	categorizer := NewCategorizer()
	categorizer.SogliaSuperFan = 300

	outcome := CallOutcome{
		Stato:         models.StatoChiamatoCompletato,
		Soddisfazione: models.MoltoSoddisfatto,
	}
	assert.Equal(t, models.CategoriaSuperFan, categorizer.Categorize(outcome, 350))
	assert.Equal(t, models.CategoriaFan, categorizer.Categorize(outcome, 250))
}

func TestCategorizeIsIdempotent(t *testing.T) {
	categorizer := NewCategorizer()
	outcome := CallOutcome{
		Stato:           models.StatoChiamatoCompletato,
		Soddisfazione:   models.Insoddisfatto,
		Note:            "tutto ok a parte lo sconto mancato",
		ProblemaRisolto: true,
	}

	first := categorizer.Categorize(outcome, 500)
	second := categorizer.Categorize(outcome, 500)
	assert.Equal(t, first, second)
}

func TestCalculateImpattoCliente(t *testing.T) {
	tests := []struct {
		name        string
		ticketValue float64
		soglie      ImpattoSoglie
		want        string
	}{
		{"Zero is low", 0, DefaultImpattoSoglie, ImpattoBasso},
		{"Just under medium", 199.99, DefaultImpattoSoglie, ImpattoBasso},
		{"Medium threshold", 200, DefaultImpattoSoglie, ImpattoMedio},
		{"Just under high", 399.99, DefaultImpattoSoglie, ImpattoMedio},
		{"High threshold", 400, DefaultImpattoSoglie, ImpattoAlto},
		{"Custom thresholds", 250, ImpattoSoglie{Medio: 100, Alto: 240}, ImpattoAlto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateImpattoCliente(tt.ticketValue, tt.soglie))
		})
	}
}
