package services

import (
	"context"
	"log"
	"time"

	"pharmatrace/internal/adapters/persistence/repositories"
	"pharmatrace/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// PatentSweepService runs a daily sweep over API certifications and emits
// an ApiPatentExpired notification for every certification whose patent
// expiry has passed. The sweep never mutates registry state: expiry is
// advisory data, approval checks stay purely membership-based.
type PatentSweepService struct {
	registryRepo repositories.RegistryRepository
	notify       *NotificationService
	cron         *cron.Cron
}

// NewPatentSweepService creates a new patent sweep service
func NewPatentSweepService(registryRepo repositories.RegistryRepository, notify *NotificationService) *PatentSweepService {
	return &PatentSweepService{
		registryRepo: registryRepo,
		notify:       notify,
		cron:         cron.New(),
	}
}

// Start schedules the daily sweep at 08:30
func (s *PatentSweepService) Start() {
	s.cron.AddFunc("30 8 * * *", s.Sweep)
	s.cron.Start()
	log.Println("🚀 PatentSweepService started (daily 08:30)")
}

// Stop stops the scheduler
func (s *PatentSweepService) Stop() {
	s.cron.Stop()
	log.Println("🛑 PatentSweepService stopped")
}

// Sweep emits a notification per API certification with a passed patent
// expiry. Safe to call directly; the cron entry just does this on schedule.
func (s *PatentSweepService) Sweep() {
	ctx := context.Background()
	now := time.Now().Unix()

	certs, err := s.registryRepo.ListAPICertificationsExpiringBefore(ctx, now)
	if err != nil {
		log.Printf("⚠️ Patent sweep failed: %v", err)
		return
	}

	for _, cert := range certs {
		s.notify.Emit(ctx, domain.EventAPIPatentExpired, map[string]interface{}{
			"api":           cert.Identity,
			"patent_expiry": cert.PatentExpiry,
		})
	}

	if len(certs) > 0 {
		log.Printf("📋 Patent sweep: %d expired API certification(s)", len(certs))
	}
}
