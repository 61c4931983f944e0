package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sktraders/tradevat-api/internal/application/dto"
	"github.com/sktraders/tradevat-api/internal/application/imports"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
)

// ImportsHandler handles HTTP requests for customs intake (protected).
type ImportsHandler struct {
	uc *imports.RecordImportUseCase
}

// NewImportsHandler builds the handler.
func NewImportsHandler(uc *imports.RecordImportUseCase) *ImportsHandler {
	return &ImportsHandler{uc: uc}
}

// RecordImport godoc
// @Summary      Record one Bill-of-Entry item
// @Description  Appends the IMPORT ledger entry and credits the period balance
// @Description  with the item's VAT plus advance tax. Resubmitting the same
// @Description  (boe_no, boe_item) replaces the fact and moves the credit delta.
// @Tags         imports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordImportRequest  true  "Bill-of-Entry item"
// @Success      201   {object}  dto.ImportFactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      423   {object}  dto.ErrorResponse
// @Router       /api/imports [post]
func (h *ImportsHandler) RecordImport(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.RecordImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	input, err := importInputFromDTO(in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "boe_date: expected YYYY-MM-DD"})
	}
	fact, err := h.uc.RecordImport(c.Context(), userID, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(importFactToDTO(fact))
}

// RecordImportBatch godoc
// @Summary      Record a batch of Bill-of-Entry items
// @Description  Each row is applied in its own transaction; failed rows are
// @Description  reported individually instead of aborting the batch.
// @Tags         imports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportBatchRequest  true  "rows"
// @Success      200   {object}  dto.ImportBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/imports/batch [post]
func (h *ImportsHandler) RecordImportBatch(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.ImportBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if len(in.Rows) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rows: empty"})
	}
	rows := make([]imports.ImportInput, 0, len(in.Rows))
	var parseFailures []dto.ImportRowFailure
	for i, r := range in.Rows {
		input, err := importInputFromDTO(r)
		if err != nil {
			parseFailures = append(parseFailures, dto.ImportRowFailure{
				Row: i, BOENo: r.BOENo, BOEItem: r.BOEItem,
				Code: "VALIDATION", Message: "boe_date: expected YYYY-MM-DD",
			})
			// keep row indexes aligned with the submitted payload
			input = imports.ImportInput{}
		}
		rows = append(rows, input)
	}
	accepted, failed := h.uc.RecordImportBatch(c.Context(), userID, rows)
	for _, pf := range parseFailures {
		replaced := false
		for i := range failed {
			if failed[i].Row == pf.Row {
				failed[i] = pf
				replaced = true
				break
			}
		}
		if !replaced {
			failed = append(failed, pf)
		}
	}
	return c.JSON(dto.ImportBatchResponse{Accepted: accepted, Failed: failed})
}

func importInputFromDTO(in dto.RecordImportRequest) (imports.ImportInput, error) {
	date, err := time.Parse("2006-01-02", in.BOEDate)
	if err != nil {
		return imports.ImportInput{}, err
	}
	return imports.ImportInput{
		BOENo:             in.BOENo,
		BOEItem:           in.BOEItem,
		BOEDate:           date,
		ProductID:         in.ProductID,
		Quantity:          in.Quantity,
		Unit:              in.Unit,
		UnitCost:          in.UnitCost,
		AssessableValue:   in.AssessableValue,
		BaseVAT:           in.BaseVAT,
		SupplementaryDuty: in.SupplementaryDuty,
		VAT:               in.VAT,
		AdvanceTax:        in.AdvanceTax,
	}, nil
}

func importFactToDTO(f *entity.ImportFact) dto.ImportFactResponse {
	return dto.ImportFactResponse{
		ID:                f.ID,
		BOENo:             f.BOENo,
		BOEItem:           f.BOEItem,
		BOEDate:           f.BOEDate.Format("2006-01-02"),
		ProductID:         f.ProductID,
		Quantity:          f.Quantity,
		Unit:              f.UnitMeasure,
		UnitCost:          f.UnitCost,
		AssessableValue:   f.AssessableValue,
		BaseVAT:           f.BaseVAT,
		SupplementaryDuty: f.SupplementaryDuty,
		VAT:               f.VAT,
		AdvanceTax:        f.AdvanceTax,
		CreditAmount:      f.CreditAmount(),
	}
}
