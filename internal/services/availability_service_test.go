package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"palletdock/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AvailabilityServiceTestSuite struct {
	suite.Suite
	mockPallets *MockPalletRepository
	mockBoxes   *MockBoxRepository
	mockCache   *MockCacheService
	service     AvailabilityService
	context     context.Context
}

func (suite *AvailabilityServiceTestSuite) SetupTest() {
	suite.mockPallets = &MockPalletRepository{}
	suite.mockBoxes = &MockBoxRepository{}
	suite.mockCache = &MockCacheService{}
	suite.mockPallets.Test(suite.T())
	suite.mockBoxes.Test(suite.T())
	suite.mockCache.Test(suite.T())

	suite.service = NewAvailabilityService(suite.mockPallets, suite.mockBoxes, suite.mockCache, time.Minute)
	suite.context = context.Background()
}

func (suite *AvailabilityServiceTestSuite) TearDownTest() {
	suite.mockPallets.AssertExpectations(suite.T())
	suite.mockBoxes.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestAvailabilityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityServiceTestSuite))
}

func availPallet(id int64, capacity int) *models.Pallet {
	return &models.Pallet{ID: id, Code: fmt.Sprintf("Pallet %d", id), Capacity: capacity}
}

func availBox(po, color, sku string) *models.Box {
	return &models.Box{PurchaseOrder: po, Color: color, SKUNumber: sku}
}

func (suite *AvailabilityServiceTestSuite) expectCacheMissAndStore(combo models.Combination) {
	suite.mockCache.On("GetAvailability", suite.context, combo).Return(nil, nil)
	suite.mockCache.On("SetAvailability", suite.context, combo, mock.Anything, time.Minute).Return(nil)
}

func (suite *AvailabilityServiceTestSuite) TestMatchingPalletWithSpace() {
	combo := models.Combination{PurchaseOrder: "PO1", Color: "BLACK", SKUNumber: "400"}
	suite.expectCacheMissAndStore(combo)

	suite.mockPallets.On("List", suite.context).Return([]*models.Pallet{availPallet(1, 3)}, nil)
	suite.mockBoxes.On("ListByPallet", suite.context, int64(1)).
		Return([]*models.Box{availBox("PO1", "BLACK", "400")}, nil)

	report, err := suite.service.CheckAvailability(suite.context, &models.Label{PurchaseOrder: "PO1", Color: "BLACK", SKUNumber: "400"})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, report.TotalPallets)
	assert.Equal(suite.T(), 1, report.ValidPalletCount)
	assert.True(suite.T(), report.Pallets[0].CanAccept)
	assert.Equal(suite.T(), "Same combination and has space.", report.Pallets[0].Reason)
}

func (suite *AvailabilityServiceTestSuite) TestMatchingPalletFull() {
	combo := models.Combination{PurchaseOrder: "PO1", Color: "BLACK", SKUNumber: "400"}
	suite.expectCacheMissAndStore(combo)

	full := []*models.Box{
		availBox("PO1", "BLACK", "400"),
		availBox("PO1", "BLACK", "400"),
	}
	suite.mockPallets.On("List", suite.context).Return([]*models.Pallet{availPallet(1, 2)}, nil)
	suite.mockBoxes.On("ListByPallet", suite.context, int64(1)).Return(full, nil)

	report, err := suite.service.CheckAvailability(suite.context, &models.Label{PurchaseOrder: "PO1", Color: "BLACK", SKUNumber: "400"})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, report.ValidPalletCount)
	assert.False(suite.T(), report.Pallets[0].CanAccept)
	assert.Equal(suite.T(), "Same combination but pallet is full.", report.Pallets[0].Reason)
}

func (suite *AvailabilityServiceTestSuite) TestDifferentCombination() {
	combo := models.Combination{PurchaseOrder: "PO2", Color: "NAVY", SKUNumber: "500"}
	suite.expectCacheMissAndStore(combo)

	suite.mockPallets.On("List", suite.context).Return([]*models.Pallet{availPallet(1, 3)}, nil)
	suite.mockBoxes.On("ListByPallet", suite.context, int64(1)).
		Return([]*models.Box{availBox("PO1", "BLACK", "400")}, nil)

	report, err := suite.service.CheckAvailability(suite.context, &models.Label{PurchaseOrder: "PO2", Color: "NAVY", SKUNumber: "500"})
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), report.Pallets[0].CanAccept)
	assert.Equal(suite.T(), "Different combination present.", report.Pallets[0].Reason)
}

func (suite *AvailabilityServiceTestSuite) TestEmptyPalletRejectedWhileMatchHasSpace() {
	combo := models.Combination{PurchaseOrder: "PO1", Color: "BLACK", SKUNumber: "400"}
	suite.expectCacheMissAndStore(combo)

	suite.mockPallets.On("List", suite.context).
		Return([]*models.Pallet{availPallet(1, 3), availPallet(2, 3)}, nil)
	suite.mockBoxes.On("ListByPallet", suite.context, int64(1)).
		Return([]*models.Box{availBox("PO1", "BLACK", "400")}, nil)
	suite.mockBoxes.On("ListByPallet", suite.context, int64(2)).
		Return([]*models.Box{}, nil)

	report, err := suite.service.CheckAvailability(suite.context, &models.Label{PurchaseOrder: "PO1", Color: "BLACK", SKUNumber: "400"})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, report.ValidPalletCount)
	assert.True(suite.T(), report.Pallets[0].CanAccept)
	assert.False(suite.T(), report.Pallets[1].CanAccept)
	assert.Equal(suite.T(),
		"Empty pallet; another pallet with same combination has space. Prefer filling that.",
		report.Pallets[1].Reason)
}

func (suite *AvailabilityServiceTestSuite) TestEmptyPalletAcceptedWhenAllMatchesFull() {
	combo := models.Combination{PurchaseOrder: "PO1", Color: "BLACK", SKUNumber: "400"}
	suite.expectCacheMissAndStore(combo)

	full := []*models.Box{
		availBox("PO1", "BLACK", "400"),
		availBox("PO1", "BLACK", "400"),
	}
	suite.mockPallets.On("List", suite.context).
		Return([]*models.Pallet{availPallet(1, 2), availPallet(2, 2)}, nil)
	suite.mockBoxes.On("ListByPallet", suite.context, int64(1)).Return(full, nil)
	suite.mockBoxes.On("ListByPallet", suite.context, int64(2)).Return([]*models.Box{}, nil)

	report, err := suite.service.CheckAvailability(suite.context, &models.Label{PurchaseOrder: "PO1", Color: "BLACK", SKUNumber: "400"})
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), report.Pallets[1].CanAccept)
	assert.Equal(suite.T(),
		"All pallets with same combination are full; can start a new pallet for this combination.",
		report.Pallets[1].Reason)
}

func (suite *AvailabilityServiceTestSuite) TestEmptyPalletAcceptedForNewCombination() {
	combo := models.Combination{PurchaseOrder: "PO3", Color: "RED", SKUNumber: "600"}
	suite.expectCacheMissAndStore(combo)

	suite.mockPallets.On("List", suite.context).Return([]*models.Pallet{availPallet(1, 3)}, nil)
	suite.mockBoxes.On("ListByPallet", suite.context, int64(1)).Return([]*models.Box{}, nil)

	report, err := suite.service.CheckAvailability(suite.context, &models.Label{PurchaseOrder: "PO3", Color: "RED", SKUNumber: "600"})
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), report.Pallets[0].CanAccept)
	assert.Equal(suite.T(),
		"No pallet has this combination yet; can start new combination here.",
		report.Pallets[0].Reason)
}

func (suite *AvailabilityServiceTestSuite) TestMixedPalletNeverCountsAsMatch() {
	// One matching box plus one mismatched box: the pallet is neither a
	// same-combination candidate nor empty, so it reads as different.
	combo := models.Combination{PurchaseOrder: "PO1", Color: "BLACK", SKUNumber: "400"}
	suite.expectCacheMissAndStore(combo)

	mixed := []*models.Box{
		availBox("PO1", "BLACK", "400"),
		availBox("PO2", "NAVY", "500"),
	}
	suite.mockPallets.On("List", suite.context).
		Return([]*models.Pallet{availPallet(1, 3), availPallet(2, 3)}, nil)
	suite.mockBoxes.On("ListByPallet", suite.context, int64(1)).Return(mixed, nil)
	suite.mockBoxes.On("ListByPallet", suite.context, int64(2)).Return([]*models.Box{}, nil)

	report, err := suite.service.CheckAvailability(suite.context, &models.Label{PurchaseOrder: "PO1", Color: "BLACK", SKUNumber: "400"})
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), report.Pallets[0].CanAccept)
	assert.Equal(suite.T(), "Different combination present.", report.Pallets[0].Reason)
	// No pure same-combination pallet exists, so the empty pallet opens fresh.
	assert.True(suite.T(), report.Pallets[1].CanAccept)
	assert.Equal(suite.T(),
		"No pallet has this combination yet; can start new combination here.",
		report.Pallets[1].Reason)
}

func (suite *AvailabilityServiceTestSuite) TestCombinationNormalizedBeforeCompare() {
	combo := models.Combination{PurchaseOrder: "PO1", Color: "BLACK", SKUNumber: "400"}
	suite.expectCacheMissAndStore(combo)

	suite.mockPallets.On("List", suite.context).Return([]*models.Pallet{availPallet(1, 3)}, nil)
	suite.mockBoxes.On("ListByPallet", suite.context, int64(1)).
		Return([]*models.Box{availBox("po1", "black", "400")}, nil)

	report, err := suite.service.CheckAvailability(suite.context, &models.Label{PurchaseOrder: " PO1 ", Color: " BLACK ", SKUNumber: " 400 "})
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), report.Pallets[0].CanAccept)
}

func (suite *AvailabilityServiceTestSuite) TestCacheHitSkipsRepositories() {
	combo := models.Combination{PurchaseOrder: "PO1", Color: "BLACK", SKUNumber: "400"}
	cached := &models.AvailabilityReport{RequestedCombination: combo, TotalPallets: 10}
	suite.mockCache.On("GetAvailability", suite.context, combo).Return(cached, nil)

	report, err := suite.service.CheckAvailability(suite.context, &models.Label{PurchaseOrder: "PO1", Color: "BLACK", SKUNumber: "400"})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, report)
}
