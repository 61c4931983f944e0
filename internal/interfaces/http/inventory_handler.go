package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sktraders/tradevat-api/internal/application/dto"
	"github.com/sktraders/tradevat-api/internal/application/inventory"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
)

// InventoryHandler handles HTTP requests for the stock ledger (protected).
type InventoryHandler struct {
	adjust    *inventory.AdjustStockUseCase
	valuation *inventory.ValuationUseCase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(adjust *inventory.AdjustStockUseCase, valuation *inventory.ValuationUseCase) *InventoryHandler {
	return &InventoryHandler{adjust: adjust, valuation: valuation}
}

// AdjustStock godoc
// @Summary      Record a stock adjustment
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, direction (IN/OUT), quantity, reason"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	entry, err := h.adjust.Adjust(c.Context(), userID, inventory.AdjustInput{
		ProductID:   in.ProductID,
		Direction:   in.Direction,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		ReferenceNo: in.ReferenceNo,
		UnitCost:    in.UnitCost,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ledgerEntryToDTO(entry))
}

// RecordOpening godoc
// @Summary      Record the opening stock for a product
// @Description  Valid only while the product's ledger is empty.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpeningStockRequest  true  "product_id, quantity, unit_cost"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/opening [post]
func (h *InventoryHandler) RecordOpening(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.OpeningStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	entry, err := h.adjust.RecordOpening(c.Context(), userID, inventory.OpeningInput{
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		ReferenceNo: in.ReferenceNo,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ledgerEntryToDTO(entry))
}

// GetPosition godoc
// @Summary      Stock position and weighted average cost for a product
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  dto.PositionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/position [get]
func (h *InventoryHandler) GetPosition(c *fiber.Ctx) error {
	productID := c.Params("id")
	pos, err := h.valuation.GetPosition(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PositionResponse{
		ProductID:           productID,
		QuantityOnHand:      pos.QuantityOnHand,
		WeightedAverageCost: pos.WeightedAverageCost,
	})
}

// ListLedger godoc
// @Summary      Movement history for a product
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "Product ID"
// @Param        from    query  string  false  "Start date (YYYY-MM-DD)"
// @Param        to      query  string  false  "End date (YYYY-MM-DD, exclusive)"
// @Param        limit   query  int     false  "Page size (default 100, max 500)"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {array}   dto.LedgerEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/ledger [get]
func (h *InventoryHandler) ListLedger(c *fiber.Ctx) error {
	productID := c.Params("id")
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from: expected YYYY-MM-DD"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to: expected YYYY-MM-DD"})
		}
		to = &t
	}
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)

	entries, err := h.valuation.ListLedger(c.Context(), productID, from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ledgerEntryToDTO(e))
	}
	return c.JSON(out)
}

// ReconcileStock godoc
// @Summary      Recompute the cached stock of a product from its ledger
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  dto.PositionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/reconcile-stock [post]
func (h *InventoryHandler) ReconcileStock(c *fiber.Ctx) error {
	productID := c.Params("id")
	pos, err := h.valuation.ReconcileStock(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PositionResponse{
		ProductID:           productID,
		QuantityOnHand:      pos.QuantityOnHand,
		WeightedAverageCost: pos.WeightedAverageCost,
	})
}

func ledgerEntryToDTO(e *entity.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:          e.ID,
		ProductID:   e.ProductID,
		Date:        e.Date.Format("2006-01-02"),
		Kind:        e.Kind,
		ReferenceNo: e.ReferenceNo,
		QtyIn:       e.QtyIn,
		QtyOut:      e.QtyOut,
		UnitCost:    e.UnitCost,
	}
}
