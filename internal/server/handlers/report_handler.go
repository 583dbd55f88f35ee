package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultry/internal/domain/models"
	"github.com/mamadbah2/poultry/internal/service/reporting"
)

const queryDateLayout = "2006-01-02"

// InventoryReporter folds stored rows into stock figures.
type InventoryReporter interface {
	Inventory(ctx context.Context, from, to time.Time) (models.InventoryReport, error)
}

// ReportHandler serves inventory summaries.
type ReportHandler struct {
	svc    InventoryReporter
	logger *zap.Logger
}

// NewReportHandler constructs the report adapter.
func NewReportHandler(svc InventoryReporter, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// Inventory answers GET /reports/inventory?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Both bounds are optional: from defaults to the beginning of history and to
// to the current time. A to date covers the whole day. Add format=text for
// the chat rendering.
func (h *ReportHandler) Inventory(c *gin.Context) {
	from, err := parseDay(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := parseDay(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}
	if to.IsZero() {
		to = time.Now().UTC()
	} else {
		to = to.Add(24*time.Hour - time.Millisecond)
	}

	report, err := h.svc.Inventory(c.Request.Context(), from, to)
	if err != nil {
		h.logger.Error("inventory report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, reporting.Format(report))
		return
	}
	c.JSON(http.StatusOK, report)
}

func parseDay(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(queryDateLayout, value, time.UTC)
}
