package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/savemypet/storefront/internal/core/ports"
)

const activityPageSize = 100

// ActivityHandler exposes the audit trail to superadmins.
type ActivityHandler struct {
	activity ports.ActivityRepository
}

func NewActivityHandler(activity ports.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// Latest handles GET /api/activity-logs (superadmin): the most recent
// entries, newest first.
func (h *ActivityHandler) Latest(c echo.Context) error {
	entries, err := h.activity.Latest(c.Request().Context(), activityPageSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
