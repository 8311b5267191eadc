package report

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
)

// FinancialPDFGenerator renderiza el reporte financiero a PDF.
// Lo implementa infrastructure/pdf; la interfaz evita acoplar el caso de uso
// a la librería de render.
type FinancialPDFGenerator interface {
	Generate(ctx context.Context, report *dto.FinancialReportDTO) ([]byte, error)
}
