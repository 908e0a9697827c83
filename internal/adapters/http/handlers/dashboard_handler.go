package handlers

import (
	"hima-kasku/internal/core/services"
	"hima-kasku/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	reportService *services.ReportService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(reportService *services.ReportService) *DashboardHandler {
	return &DashboardHandler{reportService: reportService}
}

// Admin returns the global per-student roll-up
// @Summary Admin dashboard
// @Description Per-student paid/partial/unpaid counts across all dues, ordered by name
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/admin [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	data, err := h.reportService.GetAdminDashboard(c.Context())
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// Student returns the authenticated student's due status view
// @Summary Student dashboard
// @Description Summary counts, outstanding dues, settled dues and payment history for the current student
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard/student [get]
func (h *DashboardHandler) Student(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.reportService.GetStudentDashboard(c.Context(), userID)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}
