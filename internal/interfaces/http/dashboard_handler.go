package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/pdv-planilha-api/internal/application/analytics"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DashboardHandler maneja los endpoints del painel.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Painel financiero
// @Description  preset: 0 (hoy), 7, 30, 90 (últimos N días) o all. Sin preset se usan start/end (YYYY-MM-DD o DD/MM/YYYY).
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        preset  query  string  false  "0 | 7 | 30 | 90 | all"
// @Param        start   query  string  false  "fecha inicial inclusive"
// @Param        end     query  string  false  "fecha final inclusive"
// @Success      200  {object}  dto.DashboardResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.UserContext(), c.Query("preset"), c.Query("start"), c.Query("end"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Painel en PDF
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Param        preset  query  string  false  "0 | 7 | 30 | 90 | all"
// @Param        start   query  string  false  "fecha inicial inclusive"
// @Param        end     query  string  false  "fecha final inclusive"
// @Success      200
// @Router       /api/dashboard/export.pdf [get]
func (h *DashboardHandler) ExportPDF(c *fiber.Ctx) error {
	body, err := h.uc.ExportPDF(c.UserContext(), c.Query("preset"), c.Query("start"), c.Query("end"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, body, mimePDF, "painel.pdf")
}

// ExportXLSX godoc
// @Summary      Painel en Excel
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        preset  query  string  false  "0 | 7 | 30 | 90 | all"
// @Param        start   query  string  false  "fecha inicial inclusive"
// @Param        end     query  string  false  "fecha final inclusive"
// @Success      200
// @Router       /api/dashboard/export.xlsx [get]
func (h *DashboardHandler) ExportXLSX(c *fiber.Ctx) error {
	body, err := h.uc.ExportXLSX(c.UserContext(), c.Query("preset"), c.Query("start"), c.Query("end"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, body, mimeXLSX, "painel.xlsx")
}

func sendFile(c *fiber.Ctx, body []byte, mime, name string) error {
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(body)
}
