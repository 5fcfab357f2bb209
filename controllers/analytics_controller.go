package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jansuvidha/noticeboard/analytics"
	"github.com/jansuvidha/noticeboard/utils"
)

// SummaryProvider answers dashboard summary queries.
type SummaryProvider interface {
	Summary(ctx context.Context, opts analytics.SummaryOptions) (*analytics.Summary, error)
}

// ExpirySweeper deactivates expired listings on demand.
type ExpirySweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// AnalyticsController exposes the admin summary report and the on-demand
// expiry sweep.
type AnalyticsController struct {
	reporter SummaryProvider
	sweeper  ExpirySweeper
}

// NewAnalyticsController creates a new AnalyticsController instance.
func NewAnalyticsController(reporter SummaryProvider, sweeper ExpirySweeper) *AnalyticsController {
	return &AnalyticsController{reporter: reporter, sweeper: sweeper}
}

// GetSummary returns visit totals, the top listings and active counts for the
// dashboard. Query parameters: start_date, end_date (YYYY-MM-DD, inclusive)
// and sort ("views" or "date").
func (a *AnalyticsController) GetSummary(ctx *gin.Context) {
	opts := analytics.SummaryOptions{}

	if raw := ctx.Query("start_date"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40040, "invalid start_date, expected YYYY-MM-DD")
			return
		}
		opts.StartDate = &t
	}
	if raw := ctx.Query("end_date"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40041, "invalid end_date, expected YYYY-MM-DD")
			return
		}
		opts.EndDate = &t
	}

	sortBy, err := analytics.ParseSortBy(ctx.Query("sort"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid sort, expected 'views' or 'date'")
		return
	}
	opts.SortBy = sortBy

	summary, err := a.reporter.Summary(ctx.Request.Context(), opts)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to compute summary")
		return
	}

	utils.Success(ctx, summary)
}

// SweepExpired runs the expiry sweep immediately and reports how many
// listings were deactivated. Shares its implementation with the daily timer,
// so calling it at any moment is safe.
func (a *AnalyticsController) SweepExpired(ctx *gin.Context) {
	n, err := a.sweeper.SweepExpired(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "expiry sweep failed")
		return
	}

	utils.Success(ctx, gin.H{"deactivated_count": n})
}
