package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sktraders/tradevat-api/internal/application/dto"
	"github.com/sktraders/tradevat-api/internal/application/settlement"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
)

// ChallanHandler handles HTTP requests for treasury deposit vouchers (protected).
type ChallanHandler struct {
	uc *settlement.ChallanUseCase
}

// NewChallanHandler builds the handler.
func NewChallanHandler(uc *settlement.ChallanUseCase) *ChallanHandler {
	return &ChallanHandler{uc: uc}
}

// RecordChallan godoc
// @Summary      Record a treasury challan
// @Tags         challans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordChallanRequest  true  "token_no, bank, date, account_code, amount, year, month"
// @Success      201   {object}  dto.ChallanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/challans [post]
func (h *ChallanHandler) RecordChallan(c *fiber.Ctx) error {
	var in dto.RecordChallanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date: expected YYYY-MM-DD"})
	}
	ch, err := h.uc.RecordChallan(c.Context(), settlement.ChallanInput{
		TokenNo:     in.TokenNo,
		Bank:        in.Bank,
		Branch:      in.Branch,
		Date:        date,
		AccountCode: in.AccountCode,
		Amount:      in.Amount,
		Period:      entity.Period{Year: in.Year, Month: in.Month},
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(challanToDTO(ch))
}

// ListChallans godoc
// @Summary      List the treasury challans of a month
// @Tags         challans
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  true  "Year"
// @Param        month  query  int  true  "Month (1-12)"
// @Success      200  {array}   dto.ChallanResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/challans [get]
func (h *ChallanHandler) ListChallans(c *fiber.Ctx) error {
	p := entity.Period{Year: c.QueryInt("year"), Month: c.QueryInt("month")}
	if !p.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid year/month"})
	}
	list, err := h.uc.ListByPeriod(c.Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ChallanResponse, 0, len(list))
	for _, ch := range list {
		out = append(out, challanToDTO(ch))
	}
	return c.JSON(out)
}

func challanToDTO(ch *entity.TreasuryChallan) dto.ChallanResponse {
	return dto.ChallanResponse{
		ID:          ch.ID,
		TokenNo:     ch.TokenNo,
		Bank:        ch.Bank,
		Branch:      ch.Branch,
		Date:        ch.Date.Format("2006-01-02"),
		AccountCode: ch.AccountCode,
		Amount:      ch.Amount,
		Year:        ch.Year,
		Month:       ch.Month,
	}
}
