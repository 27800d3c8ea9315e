package handlers

import (
	"net/http"
	"strconv"

	"palletdock/internal/common"
	"palletdock/internal/models"
	"palletdock/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	statusSuccess = "SUCCESS"
	statusFailure = "FAILURE"
)

// AssignmentHandlers handles box assignment and deletion HTTP requests
type AssignmentHandlers struct {
	assignmentService services.AssignmentService
}

// NewAssignmentHandlers creates a new assignment handlers instance
func NewAssignmentHandlers(assignmentService services.AssignmentService) *AssignmentHandlers {
	return &AssignmentHandlers{assignmentService: assignmentService}
}

// AssignBoxRequest represents the box assignment request payload
type AssignBoxRequest struct {
	PalletID int64        `json:"pallet_id"`
	Box      models.Label `json:"box"`
}

// AssignBox handles placing a scanned box onto a pallet
func (h *AssignmentHandlers) AssignBox(c echo.Context) error {
	ctx := c.Request().Context()

	var req AssignBoxRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, "Invalid request format", "")
	}
	if req.PalletID <= 0 {
		return failure(c, http.StatusBadRequest, "pallet_id is required", "")
	}

	box, err := h.assignmentService.Assign(ctx, req.PalletID, &req.Box)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status":  statusSuccess,
		"message": "Box assigned",
		"data":    box,
	})
}

// ListGrouped handles listing every pallet with its boxes
func (h *AssignmentHandlers) ListGrouped(c echo.Context) error {
	groups, err := h.assignmentService.ListAllGroupedByPallet(c.Request().Context())
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  statusSuccess,
		"message": "Pallets retrieved",
		"data":    groups,
	})
}

// ListBoxes handles listing one pallet's boxes
func (h *AssignmentHandlers) ListBoxes(c echo.Context) error {
	palletID, err := pathID(c, "id")
	if err != nil {
		return failure(c, http.StatusBadRequest, "Invalid pallet id", "")
	}

	group, err := h.assignmentService.ListBoxesByPallet(c.Request().Context(), palletID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  statusSuccess,
		"message": "Boxes retrieved",
		"data":    group,
	})
}

// DeleteBox handles deleting a single box and freeing its container id
func (h *AssignmentHandlers) DeleteBox(c echo.Context) error {
	boxID, err := pathID(c, "id")
	if err != nil {
		return failure(c, http.StatusBadRequest, "Invalid box id", "")
	}

	result, err := h.assignmentService.DeleteBox(c.Request().Context(), boxID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  statusSuccess,
		"message": "Box deleted",
		"data":    result,
	})
}

// DeleteByPallet handles clearing every box from a pallet
func (h *AssignmentHandlers) DeleteByPallet(c echo.Context) error {
	palletID, err := pathID(c, "id")
	if err != nil {
		return failure(c, http.StatusBadRequest, "Invalid pallet id", "")
	}

	result, err := h.assignmentService.DeleteByPallet(c.Request().Context(), palletID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  statusSuccess,
		"message": "Pallet cleared",
		"data":    result,
	})
}

func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func failure(c echo.Context, code int, message, errorKind string) error {
	body := map[string]interface{}{
		"status":  statusFailure,
		"message": message,
	}
	if errorKind != "" {
		body["error_kind"] = errorKind
	}
	return c.JSON(code, body)
}

// respondDomainError maps business failures to HTTP statuses. Unknown errors
// stay opaque to the caller.
func respondDomainError(c echo.Context, err error) error {
	kind, ok := common.KindOf(err)
	if !ok {
		return failure(c, http.StatusInternalServerError, "Internal server error", "")
	}

	switch kind {
	case common.ErrPalletNotFound, common.ErrBoxNotFound:
		return failure(c, http.StatusNotFound, err.Error(), string(kind))
	case common.ErrPalletFull, common.ErrCombinationConflict, common.ErrPoolExhausted:
		return failure(c, http.StatusBadRequest, err.Error(), string(kind))
	case common.ErrSequencerInconsistency:
		return failure(c, http.StatusInternalServerError, err.Error(), string(kind))
	default:
		return failure(c, http.StatusInternalServerError, "Internal server error", string(kind))
	}
}
