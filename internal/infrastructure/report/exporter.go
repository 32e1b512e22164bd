// Package report exporta el reporte del painel a PDF (maroto) y XLSX (excelize).
package report

import (
	"github.com/jhoicas/pdv-planilha-api/internal/application/ports"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/dashboard"
)

var _ ports.ReportExporter = (*Exporter)(nil)

// Exporter implementa ports.ReportExporter.
type Exporter struct {
	title string
}

// NewExporter title aparece en el encabezado de ambos formatos.
func NewExporter(title string) *Exporter {
	if title == "" {
		title = "Relatório do caixa"
	}
	return &Exporter{title: title}
}

func (e *Exporter) PDF(r *dashboard.Report) ([]byte, error) {
	return renderPDF(e.title, r)
}

func (e *Exporter) XLSX(r *dashboard.Report) ([]byte, error) {
	return renderXLSX(e.title, r)
}
