package report

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReportUseCase proyecciones de solo lectura sobre el inventario (admin).
// No participa en las garantías transaccionales del motor de movimientos.
type ReportUseCase struct {
	repo repository.ReportRepository
	pdf  FinancialPDFGenerator
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(repo repository.ReportRepository, pdf FinancialPDFGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, pdf: pdf}
}

// Status devuelve el estado actual del inventario con marca de stock bajo.
func (uc *ReportUseCase) Status(ctx context.Context) (*dto.StatusReportDTO, error) {
	rows, err := uc.repo.StatusRows(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.StatusReportDTO{
		Rows:        make([]dto.StatusReportRowDTO, 0, len(rows)),
		GeneratedAt: time.Now(),
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.StatusReportRowDTO{
			ProductID:    r.ProductID,
			Name:         r.Name,
			Article:      r.Article,
			Quantity:     r.Quantity,
			MinStock:     r.MinStock,
			Price:        r.Price,
			SupplierName: r.SupplierName,
			LowStock:     r.LowStock,
		})
		if r.LowStock {
			out.LowStockCount++
		}
	}
	out.TotalProducts = len(out.Rows)
	return out, nil
}

// Dynamics devuelve los totales de movimiento por día dentro del período.
func (uc *ReportUseCase) Dynamics(ctx context.Context, from, to time.Time) (*dto.DynamicsReportDTO, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.repo.DynamicsRows(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := &dto.DynamicsReportDTO{
		From: from,
		To:   to,
		Rows: make([]dto.DynamicsReportRowDTO, 0, len(rows)),
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.DynamicsReportRowDTO{
			Day:      r.Day,
			Income:   r.Income,
			Outcome:  r.Outcome,
			WriteOff: r.WriteOff,
		})
		out.TotalIncome += r.Income
		out.TotalOutcome += r.Outcome
		out.TotalWriteOff += r.WriteOff
	}
	return out, nil
}

// Financial devuelve la valoración del inventario (Σ quantity × price).
func (uc *ReportUseCase) Financial(ctx context.Context) (*dto.FinancialReportDTO, error) {
	rows, err := uc.repo.FinancialRows(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.FinancialReportDTO{
		Rows:        make([]dto.FinancialReportRowDTO, 0, len(rows)),
		TotalValue:  decimal.Zero,
		GeneratedAt: time.Now(),
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.FinancialReportRowDTO{
			ProductID:  r.ProductID,
			Name:       r.Name,
			Article:    r.Article,
			Quantity:   r.Quantity,
			Price:      r.Price,
			TotalValue: r.TotalValue,
		})
		out.TotalValue = out.TotalValue.Add(r.TotalValue)
	}
	return out, nil
}

// FinancialPDF genera el reporte financiero y lo renderiza a PDF.
func (uc *ReportUseCase) FinancialPDF(ctx context.Context) ([]byte, error) {
	report, err := uc.Financial(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.Generate(ctx, report)
}
