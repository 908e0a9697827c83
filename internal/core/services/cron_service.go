package services

import (
	"context"
	"log"
	"time"

	"hima-kasku/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// CronService runs the scheduled collection digest
type CronService struct {
	statusService *StatusService
	cron          *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(statusService *StatusService) *CronService {
	return &CronService{
		statusService: statusService,
		cron:          cron.New(),
	}
}

// Start registers the scheduled jobs and starts the scheduler
func (s *CronService) Start() error {
	// Daily collection digest at 08:30
	if _, err := s.cron.AddFunc("30 8 * * *", s.runDigest); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron scheduler started [daily digest at 08:30]")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("✅ Cron scheduler stopped")
}

// runDigest logs per-due collection progress
func (s *CronService) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, statuses, err := s.statusService.ProjectAll(ctx)
	if err != nil {
		log.Printf("⚠️ Collection digest failed: %v", err)
		return
	}

	log.Printf("📋 Collection digest: %d students, %d dues", len(snap.Students), len(snap.Dues))
	for _, due := range snap.Dues {
		if !due.IsActive() {
			continue
		}
		var paid, partial, unpaid int
		for _, u := range snap.Students {
			st, ok := statuses[domain.StatusKey{UserID: u.ID, DueID: due.ID}]
			if !ok {
				unpaid++
				continue
			}
			switch st.State {
			case domain.DueStatePaid:
				paid++
			case domain.DueStatePartial:
				partial++
			default:
				unpaid++
			}
		}
		log.Printf("📋 %s: %d paid, %d partial, %d unpaid", due.Title, paid, partial, unpaid)
	}
}
