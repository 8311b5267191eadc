package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/report"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// ReportHandler reportes de inventario (solo admin).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Status godoc
// @Summary      Reporte de estado de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatusReportDTO
// @Router       /api/reports/status [get]
func (h *ReportHandler) Status(c *fiber.Ctx) error {
	rep, err := h.uc.Status(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(rep)
}

// Dynamics godoc
// @Summary      Dinámica de movimientos por período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Inicio (RFC3339 o 2006-01-02)"
// @Param        to    query  string  true  "Fin (RFC3339 o 2006-01-02)"
// @Success      200   {object}  dto.DynamicsReportDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/dynamics [get]
func (h *ReportHandler) Dynamics(c *fiber.Ctx) error {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
	}
	rep, err := h.uc.Dynamics(c.Context(), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(rep)
}

// Financial godoc
// @Summary      Valoración del inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FinancialReportDTO
// @Router       /api/reports/financial [get]
func (h *ReportHandler) Financial(c *fiber.Ctx) error {
	rep, err := h.uc.Financial(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(rep)
}

// FinancialPDF godoc
// @Summary      Valoración del inventario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/financial/pdf [get]
func (h *ReportHandler) FinancialPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.FinancialPDF(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="valoracion-inventario.pdf"`)
	return c.Send(pdfBytes)
}

// parseDate acepta RFC3339 o fecha simple (2006-01-02).
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
