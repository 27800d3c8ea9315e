package services

import (
	"context"
	"fmt"
	"log"

	"palletdock/internal/models"
	"palletdock/internal/repositories"
)

const defaultPalletCapacity = 3

// defaultMasterContainerIDs are the SSCC-style ids printed on the physical
// pallet placards, in pallet order.
var defaultMasterContainerIDs = []string{
	"03000150000002708806",
	"03000150000002708813",
	"03000150000002708967",
	"03000150000002783964",
	"03000150000002784064",
	"03000150000002784164",
	"03000150000002784264",
	"03000150000002784364",
	"03000150000002784464",
	"03000150000002784564",
}

// defaultPoolContainerIDs is the finite set of reusable box container ids.
var defaultPoolContainerIDs = []string{
	"02000150000030922817",
	"02000150000030922800",
	"02000150000030922701",
	"02000150000030922718",
	"02000150000030922725",
	"02000150000030922732",
	"02000150000030922749",
	"02000150000030922756",
	"02000150000030922763",
	"02000150000030922794",
	"02000150000030922787",
	"02000150000030922770",
	"02000150000030922879",
	"02000150000030922886",
	"02000150000030922893",
	"02000150000030922824",
	"02000150000030922848",
	"02000150000030922855",
	"02000150000030922862",
	"02000150000030922831",
	"02000150000030923555",
	"02000150000030923548",
	"02000150000030923531",
	"02000150000030923524",
	"02000150000030923517",
	"02000150000030923500",
	"02000150000030923630",
	"02000150000030923623",
	"02000150000030923616",
	"02000150000030923609",
	"02000150000030923593",
}

// InitDataLoader seeds the fixed pallet set and the container pool on first
// startup. Reruns against a populated database are no-ops.
type InitDataLoader struct {
	palletRepo repositories.PalletRepository
	poolRepo   repositories.ContainerPoolRepository
}

func NewInitDataLoader(palletRepo repositories.PalletRepository, poolRepo repositories.ContainerPoolRepository) *InitDataLoader {
	return &InitDataLoader{palletRepo: palletRepo, poolRepo: poolRepo}
}

func (l *InitDataLoader) Run(ctx context.Context) error {
	palletCount, err := l.palletRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count pallets: %w", err)
	}
	if palletCount == 0 {
		for i, masterID := range defaultMasterContainerIDs {
			pallet := &models.Pallet{
				Code:              fmt.Sprintf("Pallet %d", i+1),
				MasterContainerID: masterID,
				Capacity:          defaultPalletCapacity,
			}
			if err := l.palletRepo.Create(ctx, pallet); err != nil {
				return fmt.Errorf("seed pallet %s: %w", pallet.Code, err)
			}
		}
		log.Printf("Seeded %d pallets", len(defaultMasterContainerIDs))
	}

	poolCount, err := l.poolRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count container pool: %w", err)
	}
	if poolCount == 0 {
		if err := l.poolRepo.Seed(ctx, defaultPoolContainerIDs); err != nil {
			return fmt.Errorf("seed container pool: %w", err)
		}
		log.Printf("Seeded %d pool container ids", len(defaultPoolContainerIDs))
	}

	return nil
}
