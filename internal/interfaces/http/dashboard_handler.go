package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/heleta-pos/internal/application/analytics"
	"github.com/jhoicas/heleta-pos/internal/application/dto"
	"github.com/jhoicas/heleta-pos/pkg/logger"
)

// DashboardHandler maneja el dashboard y el reporte de ventas.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	report *appanalytics.SalesReportUseCase
	log    *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, report *appanalytics.SalesReportUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, report: report, log: log}
}

// GetSummary godoc
// @Summary      Resumen del día
// @Description  Total de productos (admin: todos; otros roles: con stock), stock bajo, ventas y movimientos de hoy.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetRole(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(summary)
}

// SalesReport godoc
// @Summary      Reporte de ventas por período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "day (default) | week | month"
// @Param        from    query  string  false  "YYYY-MM-DD"
// @Param        to      query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.SalesPeriodDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *DashboardHandler) SalesReport(c *fiber.Ctx) error {
	var in dto.SalesReportRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	rows, err := h.report.GetReport(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(rows)
}
