package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sktraders/tradevat-api/internal/application/dto"
	"github.com/sktraders/tradevat-api/internal/application/sales"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/vat"
)

// SalesHandler handles HTTP requests for sales recording (protected).
type SalesHandler struct {
	uc *sales.RecordSaleUseCase
}

// NewSalesHandler builds the handler.
func NewSalesHandler(uc *sales.RecordSaleUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// RecordSale godoc
// @Summary      Record a sale
// @Description  Persists the invoice, its lines, and one SALE ledger entry per
// @Description  product within a single transaction.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "invoice_no, date, amount_type (INCLUSIVE/EXCLUSIVE), lines"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) RecordSale(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date: expected YYYY-MM-DD"})
	}
	lines := make([]sales.SaleLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, sales.SaleLineInput{
			ProductID: l.ProductID,
			Unit:      l.Unit,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	sale, saleLines, err := h.uc.RecordSale(c.Context(), userID, sales.RecordSaleInput{
		InvoiceNo:   in.InvoiceNo,
		Date:        date,
		CustomerRef: in.CustomerRef,
		AmountType:  in.AmountType,
		TotalValue:  in.TotalValue,
		Notes:       in.Notes,
		Lines:       lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	resp, err := saleToDTO(sale, saleLines)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSale godoc
// @Summary      Fetch a sale with its lines and VAT decomposition
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Sale ID"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SalesHandler) GetSale(c *fiber.Ctx) error {
	sale, lines, err := h.uc.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	resp, err := saleToDTO(sale, lines)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func saleToDTO(sale *entity.Sale, lines []*entity.SaleLine) (dto.SaleResponse, error) {
	bd, err := vat.Decompose(sale.AmountType, sale.TotalValue)
	if err != nil {
		return dto.SaleResponse{}, err
	}
	out := dto.SaleResponse{
		ID:          sale.ID,
		InvoiceNo:   sale.InvoiceNo,
		Date:        sale.Date.Format("2006-01-02"),
		CustomerRef: sale.CustomerRef,
		AmountType:  sale.AmountType,
		TotalValue:  sale.TotalValue,
		NetValue:    bd.Net,
		VATAmount:   bd.VAT,
		GrossValue:  bd.Gross,
		Notes:       sale.Notes,
		Lines:       make([]dto.SaleLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Unit:      l.UnitMeasure,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	return out, nil
}
