package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db   *gorm.DB
	conv *timezone.Converter
}

func NewAuditLogsHandler(db *gorm.DB, conv *timezone.Converter) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, conv: conv}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	// from/to accept a shop-local day (both inclusive) or a UTC timestamp.
	if fromStr != "" {
		from, _, err := h.bounds(fromStr)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		q = q.Where("created_at >= ?", from)
	}

	if toStr != "" {
		_, to, err := h.bounds(toStr)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		q = q.Where("created_at < ?", to)
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	// --------------------------------------------------
	// Page
	// --------------------------------------------------

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}

// bounds resolves a filter value to a half-open UTC span. A date covers the
// whole shop-local day; a timestamp is a single instant.
func (h *AuditLogsHandler) bounds(raw string) (time.Time, time.Time, error) {
	if len(strings.TrimSpace(raw)) == len("2006-01-02") {
		d, err := timezone.ParseDate(raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start, end := h.conv.DayBoundsUTC(d)
		return start, end, nil
	}

	t, err := timezone.ParseUTCTimestamp(raw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return t, t, nil
}
