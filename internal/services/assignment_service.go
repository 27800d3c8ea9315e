package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"palletdock/internal/caching"
	"palletdock/internal/common"
	"palletdock/internal/models"
	"palletdock/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// AssignmentService owns box placement: validating a pallet can take a box,
// drawing a container id from the pool, sequencing the appointment order and
// persisting the box, all in one transaction. Deletions return container ids
// to the pool.
type AssignmentService interface {
	Assign(ctx context.Context, palletID int64, label *models.Label) (*models.Box, error)
	DeleteBox(ctx context.Context, boxID int64) (*models.BoxDeleteResult, error)
	DeleteByPallet(ctx context.Context, palletID int64) (*models.PalletDeleteResult, error)
	ListBoxesByPallet(ctx context.Context, palletID int64) (*models.PalletGroup, error)
	ListAllGroupedByPallet(ctx context.Context) ([]*models.PalletGroup, error)
}

type assignmentService struct {
	db         repositories.DB
	palletRepo repositories.PalletRepository
	boxRepo    repositories.BoxRepository
	poolRepo   repositories.ContainerPoolRepository
	sequencer  AppointmentSequencer
	cache      caching.CacheService
	cacheTTL   time.Duration
}

func NewAssignmentService(
	db repositories.DB,
	palletRepo repositories.PalletRepository,
	boxRepo repositories.BoxRepository,
	poolRepo repositories.ContainerPoolRepository,
	sequencer AppointmentSequencer,
	cache caching.CacheService,
	cacheTTL time.Duration,
) AssignmentService {
	return &assignmentService{
		db:         db,
		palletRepo: palletRepo,
		boxRepo:    boxRepo,
		poolRepo:   poolRepo,
		sequencer:  sequencer,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// Assign validates and persists a new box on the pallet. The pallet row is
// locked first, so concurrent assignments to the same pallet serialize and
// capacity can never be oversubscribed.
func (s *assignmentService) Assign(ctx context.Context, palletID int64, label *models.Label) (*models.Box, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin assignment: %w", err)
	}
	defer tx.Rollback(ctx)

	pallets := s.palletRepo.WithTx(tx)
	boxes := s.boxRepo.WithTx(tx)
	pool := s.poolRepo.WithTx(tx)

	pallet, err := pallets.GetByIDForUpdate(ctx, palletID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewDomainError(common.ErrPalletNotFound, "pallet %d not found", palletID)
	}
	if err != nil {
		return nil, fmt.Errorf("lock pallet: %w", err)
	}

	existing, err := boxes.ListByPallet(ctx, palletID)
	if err != nil {
		return nil, fmt.Errorf("list pallet boxes: %w", err)
	}
	if len(existing) >= pallet.Capacity {
		return nil, common.NewDomainError(common.ErrPalletFull,
			"pallet %s is full (%d)", pallet.Code, pallet.Capacity)
	}
	if len(existing) > 0 {
		// The first box defines the pallet's combination.
		if !existing[0].Combination().Equal(label.Combination()) {
			return nil, common.NewDomainError(common.ErrCombinationConflict,
				"pallet %s holds a different purchase order, color or SKU", pallet.Code)
		}
	}

	entry, err := pool.AllocateNext(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewDomainError(common.ErrPoolExhausted, "no available container id in pool")
	}
	if err != nil {
		return nil, fmt.Errorf("allocate container id: %w", err)
	}

	order, err := s.sequencer.SequenceFor(ctx, boxes, label.PurchaseOrder)
	if err != nil {
		return nil, err
	}

	box := &models.Box{
		ContainerID:      entry.ContainerID,
		PalletID:         palletID,
		ImageFilename:    label.ImageFilename,
		OCRConfidence:    label.OCRConfidence,
		PurchaseOrder:    strings.TrimSpace(label.PurchaseOrder),
		Style:            label.Style,
		ItemDescription:  label.ItemDescription,
		Color:            strings.TrimSpace(label.Color),
		SKUNumber:        strings.TrimSpace(label.SKUNumber),
		Quantity:         label.Quantity,
		NetWeightKg:      label.NetWeightKg,
		GrossWeightKg:    label.GrossWeightKg,
		Measurement:      label.Measurement,
		ConsignedTo:      label.ConsignedTo,
		DeliverTo:        label.DeliverTo,
		DeliverToAddress: label.DeliverToAddress,
		CountryOfOrigin:  label.CountryOfOrigin,
		CartonNo:         label.CartonNo,
		AppointmentOrder: order,
	}
	if err := boxes.Create(ctx, box); err != nil {
		return nil, fmt.Errorf("create box: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit assignment: %w", err)
	}

	s.invalidateCache(ctx)
	return box, nil
}

// DeleteBox removes a box and returns its container id to the pool in the
// same transaction. A pool miss on release is soft; the deletion stands and
// the result records Released=false.
func (s *assignmentService) DeleteBox(ctx context.Context, boxID int64) (*models.BoxDeleteResult, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin box deletion: %w", err)
	}
	defer tx.Rollback(ctx)

	boxes := s.boxRepo.WithTx(tx)
	pool := s.poolRepo.WithTx(tx)

	box, err := boxes.GetByID(ctx, boxID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewDomainError(common.ErrBoxNotFound, "box %d not found", boxID)
	}
	if err != nil {
		return nil, fmt.Errorf("load box: %w", err)
	}

	deleted, err := boxes.DeleteByID(ctx, boxID)
	if err != nil {
		return nil, fmt.Errorf("delete box: %w", err)
	}
	if !deleted {
		return nil, common.NewDomainError(common.ErrBoxNotFound, "box %d not found", boxID)
	}

	released := false
	if box.ContainerID != "" {
		released, err = pool.Release(ctx, box.ContainerID)
		if err != nil {
			return nil, fmt.Errorf("release container id: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit box deletion: %w", err)
	}

	if !released && box.ContainerID != "" {
		log.Printf("WARN: container id %s on deleted box %d was not held in the pool", box.ContainerID, boxID)
	}

	s.invalidateCache(ctx)
	return &models.BoxDeleteResult{
		BoxID:       boxID,
		ContainerID: box.ContainerID,
		Released:    released,
	}, nil
}

// DeleteByPallet clears a pallet: releases each box's container id
// best-effort, then deletes the boxes in bulk. Deliberately not atomic; a
// release failure mid-way leaves earlier ids freed and is reported in
// NotFreed rather than rolled back.
func (s *assignmentService) DeleteByPallet(ctx context.Context, palletID int64) (*models.PalletDeleteResult, error) {
	exists, err := s.palletRepo.ExistsByID(ctx, palletID)
	if err != nil {
		return nil, fmt.Errorf("check pallet existence: %w", err)
	}
	if !exists {
		return nil, common.NewDomainError(common.ErrPalletNotFound, "pallet %d not found", palletID)
	}

	boxes, err := s.boxRepo.ListByPallet(ctx, palletID)
	if err != nil {
		return nil, fmt.Errorf("list pallet boxes: %w", err)
	}

	result := &models.PalletDeleteResult{PalletID: palletID, Freed: []string{}}
	if len(boxes) == 0 {
		return result, nil
	}

	for _, box := range boxes {
		if box.ContainerID == "" {
			continue
		}
		released, err := s.poolRepo.Release(ctx, box.ContainerID)
		if err != nil {
			log.Printf("WARN: releasing container id %s failed: %v", box.ContainerID, err)
			result.NotFreed = append(result.NotFreed, box.ContainerID)
			continue
		}
		if !released {
			log.Printf("WARN: container id %s on pallet %d was not held in the pool", box.ContainerID, palletID)
			result.NotFreed = append(result.NotFreed, box.ContainerID)
			continue
		}
		result.Freed = append(result.Freed, box.ContainerID)
	}

	deleted, err := s.boxRepo.DeleteByPallet(ctx, palletID)
	if err != nil {
		return nil, fmt.Errorf("delete pallet boxes: %w", err)
	}
	result.DeletedCount = deleted

	s.invalidateCache(ctx)
	return result, nil
}

// ListBoxesByPallet returns one pallet's read view, boxes oldest-first.
func (s *assignmentService) ListBoxesByPallet(ctx context.Context, palletID int64) (*models.PalletGroup, error) {
	pallet, err := s.palletRepo.GetByID(ctx, palletID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewDomainError(common.ErrPalletNotFound, "pallet %d not found", palletID)
	}
	if err != nil {
		return nil, fmt.Errorf("load pallet: %w", err)
	}

	boxes, err := s.boxRepo.ListByPallet(ctx, palletID)
	if err != nil {
		return nil, fmt.Errorf("list pallet boxes: %w", err)
	}
	return groupFor(pallet, boxes), nil
}

// ListAllGroupedByPallet returns every pallet with its boxes, pallets in
// ascending id order. Served from cache when fresh.
func (s *assignmentService) ListAllGroupedByPallet(ctx context.Context) ([]*models.PalletGroup, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetPalletGroups(ctx); err != nil {
			log.Printf("WARN: pallet group cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	pallets, err := s.palletRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pallets: %w", err)
	}

	groups := make([]*models.PalletGroup, 0, len(pallets))
	for _, pallet := range pallets {
		boxes, err := s.boxRepo.ListByPallet(ctx, pallet.ID)
		if err != nil {
			return nil, fmt.Errorf("list boxes for pallet %d: %w", pallet.ID, err)
		}
		groups = append(groups, groupFor(pallet, boxes))
	}

	if s.cache != nil {
		if err := s.cache.SetPalletGroups(ctx, groups, s.cacheTTL); err != nil {
			log.Printf("WARN: pallet group cache write failed: %v", err)
		}
	}
	return groups, nil
}

func groupFor(pallet *models.Pallet, boxes []*models.Box) *models.PalletGroup {
	group := &models.PalletGroup{
		PalletID:          pallet.ID,
		Code:              pallet.Code,
		MasterContainerID: pallet.MasterContainerID,
		Capacity:          pallet.Capacity,
		BoxCount:          len(boxes),
		Boxes:             boxes,
	}
	if group.Boxes == nil {
		group.Boxes = []*models.Box{}
	}
	if len(boxes) > 0 {
		combo := boxes[0].Combination().Trimmed()
		group.Combination = &combo
	}
	return group
}

func (s *assignmentService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAssignmentCache(ctx); err != nil {
		log.Printf("WARN: cache invalidation failed: %v", err)
	}
}
