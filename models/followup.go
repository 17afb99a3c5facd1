package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatoChiamata is the state of a follow-up call. da_chiamare is the initial
// state; every other state is terminal except richiamami, which staff may
// cycle back to a new attempt.
type StatoChiamata string

const (
	StatoDaChiamare         StatoChiamata = "da_chiamare"
	StatoChiamatoCompletato StatoChiamata = "chiamato_completato"
	StatoNonVuoleContatto   StatoChiamata = "non_vuole_essere_contattato"
	StatoNonRisponde        StatoChiamata = "non_risponde"
	StatoCellulareStaccato  StatoChiamata = "cellulare_staccato"
	StatoNumeroSbagliato    StatoChiamata = "numero_sbagliato"
	StatoRichiamami         StatoChiamata = "richiamami"
)

// Soddisfazione is the satisfaction level collected on a completed call.
// Only chiamato_completato carries one.
type Soddisfazione string

const (
	MoltoSoddisfatto Soddisfazione = "molto_soddisfatto"
	Soddisfatto      Soddisfazione = "soddisfatto"
	PocoSoddisfatto  Soddisfazione = "poco_soddisfatto"
	Insoddisfatto    Soddisfazione = "insoddisfatto"
)

// PrioritaChiamata is the priority tier of a generated call. A generated
// call always has one; there is no null priority.
type PrioritaChiamata string

const (
	PrioritaAlta    PrioritaChiamata = "alta"
	PrioritaNormale PrioritaChiamata = "normale"
	PrioritaBassa   PrioritaChiamata = "bassa"
)

// CategoriaCliente is the derived customer-sentiment label. It is never
// persisted; it is recomputed from current call data every time it is
// needed. The empty value means "uncategorized".
type CategoriaCliente string

const (
	CategoriaPerso             CategoriaCliente = "perso"
	CategoriaDelicatoCom       CategoriaCliente = "delicato_su_comunicazione"
	CategoriaSensibilePrezzo   CategoriaCliente = "sensibile_al_prezzo"
	CategoriaARischio          CategoriaCliente = "a_rischio"
	CategoriaCritico           CategoriaCliente = "critico"
	CategoriaSuperFan          CategoriaCliente = "super_fan"
	CategoriaFan               CategoriaCliente = "fan"
	CategoriaNonClassificato   CategoriaCliente = ""
)

// FollowUpCall is a post-delivery outreach call, created once per eligible
// order. ErrorTicketCreato guards against deriving a second error ticket
// from the same call.
type FollowUpCall struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"orderId"`

	DataGenerazione   time.Time        `gorm:"not null" json:"dataGenerazione"`
	Stato             StatoChiamata    `gorm:"type:varchar(40);not null;default:'da_chiamare'" json:"stato"`
	Soddisfazione     Soddisfazione    `gorm:"type:varchar(30)" json:"soddisfazione"`
	Note              string           `gorm:"type:text" json:"note"`
	ProblemaRisolto   bool             `gorm:"default:false" json:"problemaRisolto"`
	DataRichiamo      *time.Time       `json:"dataRichiamo"`
	DataCompletamento *time.Time       `json:"dataCompletamento"`
	Archiviata        bool             `gorm:"default:false" json:"archiviata"`
	Priorita          PrioritaChiamata `gorm:"type:varchar(20);not null" json:"priorita"`
	ErrorTicketCreato bool             `gorm:"default:false" json:"errorTicketCreato"`

	Order Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`

	gorm.Model
}

func (f *FollowUpCall) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}
