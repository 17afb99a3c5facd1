// services/sentiment.go
package services

import (
	"strings"

	"otticapro-backend/models"
)

// CallOutcome is the recorded result of a follow-up call, as handed back by
// the calling layer.
type CallOutcome struct {
	Stato           models.StatoChiamata
	Soddisfazione   models.Soddisfazione
	Note            string
	ProblemaRisolto bool
}

// Customer impact tiers for error tickets.
const (
	ImpattoBasso = "basso"
	ImpattoMedio = "medio"
	ImpattoAlto  = "alto"
)

// DefaultSogliaSuperFan is the ticket value from which a very satisfied
// customer counts as a super fan.
const DefaultSogliaSuperFan = 450.0

// ImpattoSoglie are the ticket-value thresholds for error-ticket severity.
type ImpattoSoglie struct {
	Medio float64
	Alto  float64
}

var DefaultImpattoSoglie = ImpattoSoglie{Medio: 200, Alto: 400}

// NoteClassifier maps the free text of a call note to a customer category.
// The keyword heuristic behind the default implementation is deliberately
// kept replaceable without touching the surrounding rules.
type NoteClassifier interface {
	Classify(note string) models.CategoriaCliente
}

// Keyword lists for the note heuristic. Case-insensitive substring match;
// communication keywords are checked before price keywords, so a note
// matching both classifies as communication-sensitive.
var (
	communicationKeywords = []string{
		"informazion", "capito", "tempi", "comunicazion",
		"comunicare", "avvisa", "spiega",
	}
	priceKeywords = []string{
		"caro", "cara", "prezzo", "costos", "sconto", "risparmi",
	}
)

type keywordNoteClassifier struct{}

func (keywordNoteClassifier) Classify(note string) models.CategoriaCliente {
	lower := strings.ToLower(note)
	if containsAny(lower, communicationKeywords) {
		return models.CategoriaDelicatoCom
	}
	if containsAny(lower, priceKeywords) {
		return models.CategoriaSensibilePrezzo
	}
	return models.CategoriaNonClassificato
}

// Categorizer assigns a derived sentiment category to a customer from the
// outcome of a follow-up call. It is pure and never errors; unrecognized
// input degrades to "no category".
type Categorizer struct {
	SogliaSuperFan float64
	Notes          NoteClassifier
}

func NewCategorizer() *Categorizer {
	return &Categorizer{
		SogliaSuperFan: DefaultSogliaSuperFan,
		Notes:          keywordNoteClassifier{},
	}
}

// Categorize applies the sentiment rules in strict priority order; the
// first matching rule wins.
func (cz *Categorizer) Categorize(outcome CallOutcome, ticketValue float64) models.CategoriaCliente {
	// An explicit refusal overrides every other signal.
	if outcome.Stato == models.StatoNonVuoleContatto {
		return models.CategoriaPerso
	}

	if outcome.Note != "" {
		if cat := cz.Notes.Classify(outcome.Note); cat != models.CategoriaNonClassificato {
			return cat
		}
	}

	// Only a completed call carries a satisfaction level.
	if outcome.Stato != models.StatoChiamatoCompletato {
		return models.CategoriaNonClassificato
	}

	switch outcome.Soddisfazione {
	case models.PocoSoddisfatto, models.Insoddisfatto:
		if outcome.ProblemaRisolto {
			return models.CategoriaARischio
		}
		return models.CategoriaCritico
	case models.MoltoSoddisfatto:
		if ticketValue >= cz.SogliaSuperFan {
			return models.CategoriaSuperFan
		}
		return models.CategoriaFan
	}

	// "soddisfatto" with no note match intentionally gets no category.
	return models.CategoriaNonClassificato
}

// CalculateImpattoCliente pre-populates error-ticket severity from the
// order value.
func CalculateImpattoCliente(ticketValue float64, soglie ImpattoSoglie) string {
	switch {
	case ticketValue >= soglie.Alto:
		return ImpattoAlto
	case ticketValue >= soglie.Medio:
		return ImpattoMedio
	default:
		return ImpattoBasso
	}
}
