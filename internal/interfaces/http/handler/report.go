package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appreport "github.com/laundrypos/backend/internal/application/report"
)

const reportDateLayout = "2006-01-02"

// ReportHandler handles deposit reporting endpoints
type ReportHandler struct {
	BaseHandler
	service *appreport.DepositReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *appreport.DepositReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GetDepositSummary returns the deposit reconciliation summary for a branch
// over a date range. The range defaults to the current month.
func (h *ReportHandler) GetDepositSummary(c *gin.Context) {
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}

	from, to, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	resp, err := h.service.GetDepositSummary(c.Request.Context(), branchID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetCustomerRows returns per-customer deposit positions, highest balance first
func (h *ReportHandler) GetCustomerRows(c *gin.Context) {
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	resp, err := h.service.GetCustomerRows(c.Request.Context(), branchID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// parseDateRange reads date_from/date_to query parameters. On a parse error
// it writes the response itself and returns ok=false.
func (h *ReportHandler) parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now

	if raw := c.Query("date_from"); raw != "" {
		parsed, err := time.ParseInLocation(reportDateLayout, raw, now.Location())
		if err != nil {
			h.BadRequest(c, "Invalid date_from, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := c.Query("date_to"); raw != "" {
		parsed, err := time.ParseInLocation(reportDateLayout, raw, now.Location())
		if err != nil {
			h.BadRequest(c, "Invalid date_to, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		// Inclusive end of day.
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	if to.Before(from) {
		h.BadRequest(c, "date_to cannot be before date_from")
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}
