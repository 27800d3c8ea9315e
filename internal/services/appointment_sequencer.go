package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"palletdock/internal/common"
	"palletdock/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// AppointmentSequencer maps a purchase order to its appointment number. A
// known purchase order reuses the number of its earliest box; a new one gets
// the next global number, serialized by an advisory lock so two first-time
// assignments can never race to the same or different numbers.
//
// The box repository is passed per call so the sequencer runs inside the
// caller's transaction.
type AppointmentSequencer interface {
	SequenceFor(ctx context.Context, boxes repositories.BoxRepository, purchaseOrder string) (string, error)
}

type appointmentSequencer struct{}

func NewAppointmentSequencer() AppointmentSequencer {
	return &appointmentSequencer{}
}

func (s *appointmentSequencer) SequenceFor(ctx context.Context, boxes repositories.BoxRepository, purchaseOrder string) (string, error) {
	exists, err := boxes.ExistsByPurchaseOrder(ctx, purchaseOrder)
	if err != nil {
		return "", fmt.Errorf("check purchase order existence: %w", err)
	}
	if exists {
		return s.reuse(ctx, boxes, purchaseOrder)
	}

	// New purchase order. Take the sequence lock, then re-check: another
	// transaction may have committed the same purchase order while we waited.
	if err := boxes.LockAppointmentSequence(ctx); err != nil {
		return "", fmt.Errorf("lock appointment sequence: %w", err)
	}
	exists, err = boxes.ExistsByPurchaseOrder(ctx, purchaseOrder)
	if err != nil {
		return "", fmt.Errorf("re-check purchase order existence: %w", err)
	}
	if exists {
		return s.reuse(ctx, boxes, purchaseOrder)
	}

	max, err := boxes.MaxAppointmentOrder(ctx)
	if err != nil {
		return "", fmt.Errorf("read max appointment order: %w", err)
	}
	return fmt.Sprintf("%03d", max+1), nil
}

func (s *appointmentSequencer) reuse(ctx context.Context, boxes repositories.BoxRepository, purchaseOrder string) (string, error) {
	first, err := boxes.FirstByPurchaseOrder(ctx, purchaseOrder)
	if errors.Is(err, pgx.ErrNoRows) {
		// Existence check said yes but no box is readable. Stored data is
		// broken; never paper over this.
		log.Printf("CRITICAL: purchase order %q exists but no box found to read its appointment order", purchaseOrder)
		return "", common.NewDomainError(common.ErrSequencerInconsistency,
			"purchase order %s exists but no appointment order found", purchaseOrder)
	}
	if err != nil {
		return "", fmt.Errorf("read earliest box for purchase order: %w", err)
	}
	return first.AppointmentOrder, nil
}
