package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/accessflow/accessflow/internal/core/domain"
	"github.com/accessflow/accessflow/internal/core/ports"
)

type AuditHandler struct {
	audit ports.AuditService
}

func NewAuditHandler(audit ports.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

type auditResponse struct {
	Entries []domain.AuditEntry `json:"entries"`
}

// List returns the most recent audit entries, newest first. Admin-only; the
// Auth and RBAC middleware enforce that before this handler runs.
//
// @Summary      List recent audit entries
// @Tags         audit
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries to return"
// @Success      200    {object}  auditResponse
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	entries, err := h.audit.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}
	return c.JSON(http.StatusOK, auditResponse{Entries: entries})
}
