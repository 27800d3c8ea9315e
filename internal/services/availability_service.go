package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"palletdock/internal/caching"
	"palletdock/internal/models"
	"palletdock/internal/repositories"
)

const (
	reasonSameComboHasSpace = "Same combination and has space."
	reasonSameComboFull     = "Same combination but pallet is full."
	reasonDifferentCombo    = "Different combination present."
	reasonPreferExisting    = "Empty pallet; another pallet with same combination has space. Prefer filling that."
	reasonStartAfterFull    = "All pallets with same combination are full; can start a new pallet for this combination."
	reasonStartFresh        = "No pallet has this combination yet; can start new combination here."
)

// AvailabilityService advises which pallets can accept a box with a given
// combination. The verdicts are advisory only; Assign re-validates under its
// own lock, so this service never mutates anything.
type AvailabilityService interface {
	CheckAvailability(ctx context.Context, label *models.Label) (*models.AvailabilityReport, error)
}

type availabilityService struct {
	palletRepo repositories.PalletRepository
	boxRepo    repositories.BoxRepository
	cache      caching.CacheService
	cacheTTL   time.Duration
}

func NewAvailabilityService(
	palletRepo repositories.PalletRepository,
	boxRepo repositories.BoxRepository,
	cache caching.CacheService,
	cacheTTL time.Duration,
) AvailabilityService {
	return &availabilityService{
		palletRepo: palletRepo,
		boxRepo:    boxRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// CheckAvailability evaluates every pallet against the label's combination.
// Empty pallets are steered away from when a same-combination pallet still
// has space, so partially filled pallets get topped up before new ones open.
func (s *availabilityService) CheckAvailability(ctx context.Context, label *models.Label) (*models.AvailabilityReport, error) {
	combo := label.Combination().Trimmed()

	if s.cache != nil {
		if cached, err := s.cache.GetAvailability(ctx, combo); err != nil {
			log.Printf("WARN: availability cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	pallets, err := s.palletRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pallets: %w", err)
	}

	boxesByPallet := make(map[int64][]*models.Box, len(pallets))
	for _, pallet := range pallets {
		boxes, err := s.boxRepo.ListByPallet(ctx, pallet.ID)
		if err != nil {
			return nil, fmt.Errorf("list boxes for pallet %d: %w", pallet.ID, err)
		}
		boxesByPallet[pallet.ID] = boxes
	}

	sameComboWithSpace := false
	for _, pallet := range pallets {
		boxes := boxesByPallet[pallet.ID]
		if isSameComboPallet(boxes, combo) && len(boxes) < pallet.Capacity {
			sameComboWithSpace = true
			break
		}
	}
	anySameCombo := false
	for _, pallet := range pallets {
		if isSameComboPallet(boxesByPallet[pallet.ID], combo) {
			anySameCombo = true
			break
		}
	}

	report := &models.AvailabilityReport{
		RequestedCombination: combo,
		TotalPallets:         len(pallets),
		Pallets:              make([]models.PalletAvailability, 0, len(pallets)),
	}

	for _, pallet := range pallets {
		boxes := boxesByPallet[pallet.ID]
		verdict := models.PalletAvailability{
			PalletID:          pallet.ID,
			Code:              pallet.Code,
			MasterContainerID: pallet.MasterContainerID,
			Capacity:          pallet.Capacity,
			CurrentCount:      len(boxes),
		}

		switch {
		case len(boxes) == 0:
			if sameComboWithSpace {
				verdict.Reason = reasonPreferExisting
			} else {
				verdict.CanAccept = true
				if anySameCombo {
					verdict.Reason = reasonStartAfterFull
				} else {
					verdict.Reason = reasonStartFresh
				}
			}
		case isSameComboPallet(boxes, combo):
			if len(boxes) < pallet.Capacity {
				verdict.CanAccept = true
				verdict.Reason = reasonSameComboHasSpace
			} else {
				verdict.Reason = reasonSameComboFull
			}
		default:
			verdict.Reason = reasonDifferentCombo
		}

		if verdict.CanAccept {
			report.ValidPalletCount++
		}
		report.Pallets = append(report.Pallets, verdict)
	}

	if s.cache != nil {
		if err := s.cache.SetAvailability(ctx, combo, report, s.cacheTTL); err != nil {
			log.Printf("WARN: availability cache write failed: %v", err)
		}
	}
	return report, nil
}

// isSameComboPallet reports whether the pallet is non-empty and every box on
// it matches the combination. A pallet with even one mismatched box never
// counts, regardless of its first box.
func isSameComboPallet(boxes []*models.Box, combo models.Combination) bool {
	if len(boxes) == 0 {
		return false
	}
	for _, box := range boxes {
		if !box.Combination().Equal(combo) {
			return false
		}
	}
	return true
}
