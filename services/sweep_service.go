// services/sweep_service.go
package services

import (
	"log"
	"sync"
	"time"

	"otticapro-backend/models"
	"otticapro-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// SweepService is the calling layer around the decision engine: a daily
// pass that archives settled orders, generates follow-up calls and flags
// due callbacks. The engine itself stays pure; all I/O lives here. The
// once-per-day throttle is explicit state with an injected clock so tests
// can drive it.
type SweepService struct {
	db       *gorm.DB
	notifier Notifier
	window   FollowUpWindow
	now      func() time.Time

	mu      sync.Mutex
	lastRun time.Time
}

func NewSweepService(db *gorm.DB, notifier Notifier) *SweepService {
	return &SweepService{
		db:       db,
		notifier: notifier,
		window:   DefaultFollowUpWindow,
		now:      time.Now,
	}
}

func (s *SweepService) StartScheduler() {
	c := cron.New()

	// Run every day before opening hours
	c.AddFunc("0 7 * * *", func() { s.RunDailySweep() })

	c.Start()
	log.Println("Daily sweep scheduler started")
}

// RunDailySweep runs the full pass at most once per calendar day.
func (s *SweepService) RunDailySweep() {
	now := s.now()

	s.mu.Lock()
	if utils.DaysBetween(s.lastRun, now) == 0 && !s.lastRun.IsZero() {
		s.mu.Unlock()
		log.Println("Daily sweep already ran today, skipping")
		return
	}
	s.lastRun = now
	s.mu.Unlock()

	log.Println("Starting daily sweep...")
	archived := s.ArchiveSettledOrders(now)
	generated := s.GenerateFollowUpCalls(now, s.window)
	notified := s.NotifyDueCallbacks(now)
	log.Printf("Daily sweep completed: %d archived, %d calls generated, %d callbacks notified", archived, generated, notified)
}

// ArchiveSettledOrders hides fully resolved orders from the active board.
func (s *SweepService) ArchiveSettledOrders(now time.Time) int {
	var orders []models.Order
	if err := s.db.
		Preload("ProductOrders").
		Preload("PaymentPlan.Installments").
		Preload("LegacyPayment").
		Where("archiviata = ?", false).
		Find(&orders).Error; err != nil {
		log.Printf("Failed to fetch orders for archival: %v", err)
		return 0
	}

	archived := 0
	for _, order := range orders {
		if !ShouldArchive(order, now) {
			continue
		}
		if err := s.db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("archiviata", true).Error; err != nil {
			log.Printf("Failed to archive order %s: %v", order.ID, err)
			continue
		}
		archived++
	}
	return archived
}

// GenerateFollowUpCalls creates pending calls for eligible delivered
// orders. The duplicate check happens before each insert; the classifier
// itself never deduplicates.
func (s *SweepService) GenerateFollowUpCalls(now time.Time, window FollowUpWindow) int {
	var orders []models.Order
	if err := s.db.
		Preload("Customer").
		Where("stato = ? AND archiviata = ?", models.StatoConsegnataPagata, false).
		Find(&orders).Error; err != nil {
		log.Printf("Failed to fetch delivered orders: %v", err)
		return 0
	}

	shopPhones := s.shopPhones()
	generated := 0
	for _, order := range orders {
		var existing int64
		if err := s.db.Model(&models.FollowUpCall{}).
			Where("order_id = ?", order.ID).
			Count(&existing).Error; err != nil {
			log.Printf("Failed duplicate check for order %s: %v", order.ID, err)
			continue
		}
		if existing > 0 {
			continue
		}

		firstLens, err := s.isFirstLensPurchase(order)
		if err != nil {
			log.Printf("Failed first-purchase lookup for order %s: %v", order.ID, err)
			continue
		}

		decision := ClassifyFollowUp(order, order.Customer, order.Totale, firstLens, shopPhones, window, now)
		if !decision.Eligible {
			continue
		}

		call := models.FollowUpCall{
			OrderID:         order.ID,
			DataGenerazione: now,
			Stato:           models.StatoDaChiamare,
			Priorita:        decision.Priorita,
		}
		if err := s.db.Create(&call).Error; err != nil {
			log.Printf("Failed to create follow-up call for order %s: %v", order.ID, err)
			continue
		}
		generated++
	}
	return generated
}

// NotifyDueCallbacks hands callbacks scheduled for today to the notifier.
func (s *SweepService) NotifyDueCallbacks(now time.Time) int {
	var calls []models.FollowUpCall
	if err := s.db.
		Preload("Order.Customer").
		Where("stato = ? AND archiviata = ? AND data_richiamo IS NOT NULL", models.StatoRichiamami, false).
		Find(&calls).Error; err != nil {
		log.Printf("Failed to fetch callback requests: %v", err)
		return 0
	}

	notified := 0
	for _, call := range calls {
		if call.DataRichiamo == nil || utils.DaysBetween(*call.DataRichiamo, now) != 0 {
			continue
		}
		if err := s.notifier.NotifyCallback(call, call.Order.Customer); err != nil {
			log.Printf("Failed to notify callback for call %s: %v", call.ID, err)
			continue
		}
		notified++
	}
	return notified
}

// isFirstLensPurchase reports whether the order is the customer's first
// contact-lens purchase.
func (s *SweepService) isFirstLensPurchase(order models.Order) (bool, error) {
	if order.Categoria != models.CategoriaLentiAContatto {
		return false, nil
	}
	var earlier int64
	err := s.db.Model(&models.Order{}).
		Where("customer_id = ? AND categoria = ? AND created_at < ? AND id <> ?",
			order.CustomerID, models.CategoriaLentiAContatto, order.CreatedAt, order.ID).
		Count(&earlier).Error
	if err != nil {
		return false, err
	}
	return earlier == 0, nil
}

func (s *SweepService) shopPhones() []string {
	var settings models.ShopSettings
	if err := s.db.First(&settings).Error; err != nil {
		return nil
	}
	return []string{settings.ShopPhone, settings.StaffPhone}
}
