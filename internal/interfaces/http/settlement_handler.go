package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sktraders/tradevat-api/internal/application/dto"
	"github.com/sktraders/tradevat-api/internal/application/settlement"
	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
)

// SettlementHandler handles HTTP requests for monthly VAT settlements (protected).
type SettlementHandler struct {
	uc *settlement.SettlementUseCase
}

// NewSettlementHandler builds the handler.
func NewSettlementHandler(uc *settlement.SettlementUseCase) *SettlementHandler {
	return &SettlementHandler{uc: uc}
}

// periodFromParams reads :year/:month and validates the calendar range.
func periodFromParams(c *fiber.Ctx) (entity.Period, bool) {
	year, err1 := c.ParamsInt("year")
	month, err2 := c.ParamsInt("month")
	p := entity.Period{Year: year, Month: month}
	if err1 != nil || err2 != nil || !p.Valid() {
		return entity.Period{}, false
	}
	return p, true
}

// Compute godoc
// @Summary      Compute the month's VAT settlement draft
// @Description  Aggregates the month's sales, applies the treasury deposit and
// @Description  the carried credit balance, and stores a replaceable draft.
// @Description  Recomputing overwrites the previous draft until the month is locked.
// @Tags         settlements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        year   path  int  true  "Year"
// @Param        month  path  int  true  "Month (1-12)"
// @Param        body   body  dto.ComputeSettlementRequest  false  "treasury_deposit override"
// @Success      200   {object}  dto.SettlementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      423   {object}  dto.ErrorResponse
// @Router       /api/settlements/{year}/{month}/compute [post]
func (h *SettlementHandler) Compute(c *fiber.Ctx) error {
	p, ok := periodFromParams(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid year/month"})
	}
	var in dto.ComputeSettlementRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
		}
	}
	st, err := h.uc.Compute(c.Context(), p, in.TreasuryDeposit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settlementToDTO(st))
}

// Lock godoc
// @Summary      Lock the month's settlement
// @Description  Freezes the draft, consumes the credit balance, and marks the
// @Description  period settled. Months must be locked in chronological order.
// @Tags         settlements
// @Security     Bearer
// @Produce      json
// @Param        year   path  int  true  "Year"
// @Param        month  path  int  true  "Month (1-12)"
// @Success      200   {object}  dto.SettlementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      423   {object}  dto.ErrorResponse
// @Router       /api/settlements/{year}/{month}/lock [post]
func (h *SettlementHandler) Lock(c *fiber.Ctx) error {
	p, ok := periodFromParams(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid year/month"})
	}
	st, err := h.uc.Lock(c.Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settlementToDTO(st))
}

// Get godoc
// @Summary      Fetch the month's settlement
// @Tags         settlements
// @Security     Bearer
// @Produce      json
// @Param        year   path  int  true  "Year"
// @Param        month  path  int  true  "Month (1-12)"
// @Success      200  {object}  dto.SettlementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settlements/{year}/{month} [get]
func (h *SettlementHandler) Get(c *fiber.Ctx) error {
	p, ok := periodFromParams(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid year/month"})
	}
	st, err := h.uc.Get(c.Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	if st == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(settlementToDTO(st))
}

// GetClosingBalance godoc
// @Summary      Fetch the month's credit balance row
// @Tags         settlements
// @Security     Bearer
// @Produce      json
// @Param        year   path  int  true  "Year"
// @Param        month  path  int  true  "Month (1-12)"
// @Success      200  {object}  dto.ClosingBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/periods/{year}/{month}/closing-balance [get]
func (h *SettlementHandler) GetClosingBalance(c *fiber.Ctx) error {
	p, ok := periodFromParams(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid year/month"})
	}
	cb, err := h.uc.GetBalance(c.Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ClosingBalanceResponse{
		Year:            cb.Year,
		Month:           cb.Month,
		OpeningBalance:  cb.OpeningBalance,
		MonthlyAddition: cb.MonthlyAddition,
		UsedAmount:      cb.UsedAmount,
		ClosingBalance:  cb.Closing(),
		Settled:         cb.Settled,
	})
}

// GetSummary godoc
// @Summary      Sales aggregates for a month
// @Tags         settlements
// @Security     Bearer
// @Produce      json
// @Param        year   path  int  true  "Year"
// @Param        month  path  int  true  "Month (1-12)"
// @Success      200  {object}  dto.PeriodSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/periods/{year}/{month}/summary [get]
func (h *SettlementHandler) GetSummary(c *fiber.Ctx) error {
	p, ok := periodFromParams(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid year/month"})
	}
	s, err := h.uc.Summarize(c.Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PeriodSummaryResponse{
		Year:       s.Period.Year,
		Month:      s.Period.Month,
		SaleCount:  s.SaleCount,
		GrossSales: s.GrossSales,
		NetSales:   s.NetSales,
		VATPayable: s.VATPayable,
	})
}

func settlementToDTO(st *entity.VATSettlement) dto.SettlementResponse {
	return dto.SettlementResponse{
		Year:            st.Year,
		Month:           st.Month,
		GrossSales:      st.GrossSales,
		NetSales:        st.NetSales,
		VATPayable:      st.VATPayable,
		TreasuryDeposit: st.TreasuryDeposit,
		UsedFromBalance: st.UsedFromBalance,
		Shortfall:       st.Shortfall,
		Locked:          st.Locked,
	}
}
