package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"palletdock/internal/models"
	"palletdock/internal/repositories"

	"github.com/google/uuid"
)

// AuditReport summarizes one pool consistency run.
type AuditReport struct {
	RunID                uuid.UUID                    `json:"run_id"`
	StartedAt            time.Time                    `json:"started_at"`
	OrphanedContainerIDs []string                     `json:"orphaned_container_ids"`
	AppointmentConflicts []models.AppointmentConflict `json:"appointment_conflicts"`
}

// Clean reports whether the run found nothing wrong.
func (r *AuditReport) Clean() bool {
	return len(r.OrphanedContainerIDs) == 0 && len(r.AppointmentConflicts) == 0
}

// PoolAuditor cross-checks the container pool against live boxes. Orphaned
// assignments mean a release was lost; appointment conflicts mean the
// sequencer's one-number-per-purchase-order rule was violated. Neither is
// repaired automatically, only reported.
type PoolAuditor struct {
	poolRepo repositories.ContainerPoolRepository
	boxRepo  repositories.BoxRepository
}

func NewPoolAuditor(poolRepo repositories.ContainerPoolRepository, boxRepo repositories.BoxRepository) *PoolAuditor {
	return &PoolAuditor{poolRepo: poolRepo, boxRepo: boxRepo}
}

func (a *PoolAuditor) Run(ctx context.Context) (*AuditReport, error) {
	report := &AuditReport{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
	}

	orphans, err := a.poolRepo.ListOrphanedAssigned(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orphaned pool assignments: %w", err)
	}
	report.OrphanedContainerIDs = orphans

	conflicts, err := a.boxRepo.FindAppointmentConflicts(ctx)
	if err != nil {
		return nil, fmt.Errorf("find appointment conflicts: %w", err)
	}
	report.AppointmentConflicts = conflicts

	for _, cid := range report.OrphanedContainerIDs {
		log.Printf("ALERT: pool audit %s found orphaned assigned container id %s", report.RunID, cid)
	}
	for _, c := range report.AppointmentConflicts {
		log.Printf("CRITICAL: pool audit %s found purchase order %s with conflicting appointment orders %v",
			report.RunID, c.PurchaseOrder, c.Orders)
	}
	if report.Clean() {
		log.Printf("Pool audit %s completed clean", report.RunID)
	}

	return report, nil
}
