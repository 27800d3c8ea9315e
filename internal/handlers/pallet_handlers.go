package handlers

import (
	"net/http"

	"palletdock/internal/models"
	"palletdock/internal/services"

	"github.com/labstack/echo/v4"
)

// PalletHandlers handles pallet availability HTTP requests
type PalletHandlers struct {
	availabilityService services.AvailabilityService
}

// NewPalletHandlers creates a new pallet handlers instance
func NewPalletHandlers(availabilityService services.AvailabilityService) *PalletHandlers {
	return &PalletHandlers{availabilityService: availabilityService}
}

// CheckAvailability handles advising which pallets can take a scanned box.
// POST because the full label rides in the body; nothing is mutated.
func (h *PalletHandlers) CheckAvailability(c echo.Context) error {
	var label models.Label
	if err := c.Bind(&label); err != nil {
		return failure(c, http.StatusBadRequest, "Invalid request format", "")
	}

	report, err := h.availabilityService.CheckAvailability(c.Request().Context(), &label)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  statusSuccess,
		"message": "Availability evaluated",
		"data":    report,
	})
}
