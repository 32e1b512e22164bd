package ports

import "github.com/jhoicas/pdv-planilha-api/internal/domain/dashboard"

// ReportExporter renderiza un reporte del painel en un formato descargable.
type ReportExporter interface {
	PDF(r *dashboard.Report) ([]byte, error)
	XLSX(r *dashboard.Report) ([]byte, error)
}
