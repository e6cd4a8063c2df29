package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/slms-api/internal/application/audit"
)

// AuditHandler expone el log de auditoría (solo Admin/Auditor vía middleware).
type AuditHandler struct {
	rec *audit.Recorder
}

// NewAuditHandler construye el handler.
func NewAuditHandler(rec *audit.Recorder) *AuditHandler {
	return &AuditHandler{rec: rec}
}

// List godoc
// @Summary      Listar entradas de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.AuditLogListResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.rec.List(limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
